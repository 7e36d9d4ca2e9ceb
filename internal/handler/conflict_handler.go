package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	"github.com/noah-isme/lpu-scheduler-api/pkg/response"
)

// ConflictHandler exposes conflict report endpoints.
type ConflictHandler struct {
	conflicts *service.ConflictService
	metrics   *service.MetricsService
}

// NewConflictHandler constructs ConflictHandler.
func NewConflictHandler(conflicts *service.ConflictService, metrics *service.MetricsService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts, metrics: metrics}
}

// Report godoc
// @Summary Grouped conflict report for the stored schedule
// @Tags Conflicts
// @Produce json
// @Param ignore_faculty query bool false "Skip faculty double-booking checks"
// @Param ignore_room query bool false "Skip room double-booking checks"
// @Param ignore_tba query bool false "Skip entries whose time or days read TBA"
// @Param ignore_faculty_list query string false "Comma-separated faculty names to skip"
// @Param ignore_room_list query string false "Comma-separated room names to skip"
// @Param faculty_contains query bool false "Match the faculty list as substrings"
// @Param room_contains query bool false "Match the room list as substrings"
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) Report(c *gin.Context) {
	query := parseConflictQuery(c)
	report, cacheHit, err := h.conflicts.Report(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordConflictLookup(cacheHit)
		if !cacheHit {
			h.metrics.RecordConflictRun(len(report.Conflicts))
		}
	}
	response.JSON(c, http.StatusOK, report, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// ForEntry godoc
// @Summary Conflict records keyed at one entry
// @Tags Conflicts
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /conflicts/entries/{id} [get]
func (h *ConflictHandler) ForEntry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.conflicts.ForEntry(c.Request.Context(), parseConflictQuery(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// parseConflictQuery reads the detector flags shared by the conflicts and
// preview endpoints.
func parseConflictQuery(c *gin.Context) service.ConflictQuery {
	return service.ConflictQuery{
		IgnoreFaculty:     c.Query("ignore_faculty") == "true",
		IgnoreRoom:        c.Query("ignore_room") == "true",
		IgnoreTBA:         c.Query("ignore_tba") == "true",
		IgnoreFacultyList: splitAndTrim(c.Query("ignore_faculty_list")),
		IgnoreRoomList:    splitAndTrim(c.Query("ignore_room_list")),
		FacultyContains:   c.Query("faculty_contains") == "true",
		RoomContains:      c.Query("room_contains") == "true",
	}
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
