package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
	"github.com/noah-isme/lpu-scheduler-api/pkg/response"
)

// ScheduleHandler exposes schedule entry endpoints.
type ScheduleHandler struct {
	schedule *service.ScheduleService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// List godoc
// @Summary List schedule entries
// @Tags Schedule
// @Produce json
// @Param section query string false "Filter by section"
// @Param faculty query string false "Filter by faculty"
// @Param room query string false "Filter by room"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedule-entries [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleEntryFilter
	filter.Section = strings.TrimSpace(c.Query("section"))
	filter.Faculty = strings.TrimSpace(c.Query("faculty"))
	filter.Room = strings.TrimSpace(c.Query("room"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}

	entries, pagination, err := h.schedule.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Get godoc
// @Summary Get one schedule entry
// @Tags Schedule
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /schedule-entries/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.schedule.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Create godoc
// @Summary Create schedule entry
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.ScheduleEntryRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Router /schedule-entries [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.schedule.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Replace schedule entry
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param payload body service.ScheduleEntryRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Router /schedule-entries/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.schedule.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete schedule entry
// @Tags Schedule
// @Param id path int true "Entry ID"
// @Success 204
// @Router /schedule-entries/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.schedule.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PreviewConflicts godoc
// @Summary Check a candidate entry against the stored schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param exclude_id query int false "Stored entry to exclude (when editing)"
// @Param payload body service.ScheduleEntryRequest true "Candidate payload"
// @Success 200 {object} response.Envelope
// @Router /schedule-entries/preview-conflicts [post]
func (h *ScheduleHandler) PreviewConflicts(c *gin.Context) {
	var excludeID int64
	if raw := c.Query("exclude_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exclude_id must be an integer"))
			return
		}
		excludeID = parsed
	}

	var req service.ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	conflicts, err := h.schedule.PreviewConflicts(c.Request.Context(), excludeID, req, parseConflictQuery(c).Config())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be an integer")
	}
	return id, nil
}
