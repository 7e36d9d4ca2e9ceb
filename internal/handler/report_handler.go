package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
	"github.com/noah-isme/lpu-scheduler-api/pkg/response"
)

// ReportHandler exposes timetable download endpoints.
type ReportHandler struct {
	exporter *service.ExportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(exporter *service.ExportService) *ReportHandler {
	return &ReportHandler{exporter: exporter}
}

// Timetable godoc
// @Summary Download one group's timetable
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param group query string true "Grouping dimension" Enums(section, faculty, room)
// @Param value query string true "Group value, e.g. a section name"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /reports/timetable [get]
func (h *ReportHandler) Timetable(c *gin.Context) {
	group := models.TimetableGroup(c.Query("group"))
	value := c.Query("value")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, filename, err := h.exporter.TimetableCSV(c.Request.Context(), group, value)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, filename, err := h.exporter.TimetablePDF(c.Request.Context(), group, value)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
