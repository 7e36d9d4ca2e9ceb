package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
	"github.com/noah-isme/lpu-scheduler-api/pkg/response"
)

// CatalogHandler exposes the section/faculty/room lookup endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List godoc
// @Summary List catalog names
// @Tags Catalog
// @Produce json
// @Param kind path string true "Catalog kind" Enums(sections, faculty, rooms)
// @Success 200 {object} response.Envelope
// @Router /catalog/{kind} [get]
func (h *CatalogHandler) List(c *gin.Context) {
	kind, err := parseKind(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.catalog.List(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Register a catalog name
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "Catalog kind" Enums(sections, faculty, rooms)
// @Param payload body service.CreateNamedEntityRequest true "Name payload"
// @Success 201 {object} response.Envelope
// @Router /catalog/{kind} [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	kind, err := parseKind(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateNamedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.catalog.Create(c.Request.Context(), kind, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func parseKind(c *gin.Context) (models.CatalogKind, error) {
	kind := models.CatalogKind(c.Param("kind"))
	if !kind.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "kind must be one of sections, faculty, rooms")
	}
	return kind, nil
}
