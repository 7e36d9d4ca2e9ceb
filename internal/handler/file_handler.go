package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
	"github.com/noah-isme/lpu-scheduler-api/pkg/response"
)

// FileHandler exposes dataset import/export endpoints.
type FileHandler struct {
	importer *service.ImportService
	exporter *service.ExportService
	metrics  *service.MetricsService
}

// NewFileHandler constructs FileHandler.
func NewFileHandler(importer *service.ImportService, exporter *service.ExportService, metrics *service.MetricsService) *FileHandler {
	return &FileHandler{importer: importer, exporter: exporter, metrics: metrics}
}

// ImportCSV godoc
// @Summary Import a schedule CSV
// @Tags Files
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Param replace query bool false "Clear the stored schedule first (admin only)"
// @Param preview query bool false "Validate without writing"
// @Success 200 {object} response.Envelope
// @Router /files/import-csv [post]
func (h *FileHandler) ImportCSV(c *gin.Context) {
	opts := service.ImportOptions{
		Replace: c.Query("replace") == "true",
		Preview: c.Query("preview") == "true",
	}
	if opts.Replace && !opts.Preview && claimsFromContext(c) == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "replace imports require admin login"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing file upload"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to open upload"))
		return
	}
	defer file.Close()

	result, err := h.importer.ImportCSV(c.Request.Context(), file, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordImportRows(result.RowsImported, result.RowsSkipped)
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ExportCSV godoc
// @Summary Download the full schedule as CSV
// @Tags Files
// @Produce text/csv
// @Success 200 {file} file
// @Router /files/export-csv [get]
func (h *FileHandler) ExportCSV(c *gin.Context) {
	data, err := h.exporter.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// Reset godoc
// @Summary Clear every scheduler table
// @Tags Files
// @Success 204
// @Security BearerAuth
// @Router /files/reset [post]
func (h *FileHandler) Reset(c *gin.Context) {
	if err := h.importer.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type timetablePNGRequest struct {
	BatchID string                `json:"batch_id"`
	Group   models.TimetableGroup `json:"group"`
	Name    string                `json:"name"`
	Image   string                `json:"image"`
}

// SaveTimetablePNG godoc
// @Summary Store a client-rendered timetable PNG
// @Tags Files
// @Accept json
// @Produce json
// @Param payload body timetablePNGRequest true "Base64 PNG payload"
// @Success 201 {object} response.Envelope
// @Router /files/timetable-png [post]
func (h *FileHandler) SaveTimetablePNG(c *gin.Context) {
	var req timetablePNGRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.BatchID == "" {
		req.BatchID = h.exporter.NewBatchID()
	}
	path, err := h.exporter.SaveTimetablePNG(req.BatchID, req.Group, req.Name, req.Image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"batch_id": req.BatchID, "path": path})
}
