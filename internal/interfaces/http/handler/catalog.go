package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/application/catalog"
)

// CatalogHandler handles service catalog activation and discovery
type CatalogHandler struct {
	BaseHandler
	activationService *catalog.ActivationService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(activationService *catalog.ActivationService) *CatalogHandler {
	return &CatalogHandler{
		activationService: activationService,
	}
}

// ListManaged godoc
// @Summary      List the managed catalog
// @Description  Returns active entries plus the entries still available for activation
// @Tags         admin-catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.ManagedCatalog}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/catalog [get]
func (h *CatalogHandler) ListManaged(c *gin.Context) {
	managed, err := h.activationService.ListManaged(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, managed)
}

// Activate godoc
// @Summary      Activate a catalog entry
// @Tags         admin-catalog
// @Produce      json
// @Param        entryId path string true "Catalog entry ID"
// @Success      200 {object} dto.Response{data=catalog.ActivationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/catalog/{entryId}/activate [post]
func (h *CatalogHandler) Activate(c *gin.Context) {
	resp, err := h.activationService.Activate(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate godoc
// @Summary      Deactivate a catalog entry
// @Description  Deactivation hides the entry from new listings; existing listings are retained
// @Tags         admin-catalog
// @Produce      json
// @Param        entryId path string true "Catalog entry ID"
// @Success      200 {object} dto.Response{data=catalog.ActivationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/catalog/{entryId}/deactivate [post]
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	resp, err := h.activationService.Deactivate(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Toggle godoc
// @Summary      Toggle an activation record
// @Tags         admin-catalog
// @Produce      json
// @Param        id path string true "Activation record ID"
// @Success      200 {object} dto.Response{data=catalog.ActivationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/catalog/activations/{id}/toggle [post]
func (h *CatalogHandler) Toggle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activation ID")
		return
	}

	resp, err := h.activationService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListActive godoc
// @Summary      List active services
// @Description  Public view of the catalog entries currently open for business
// @Tags         marketplace
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.EntryView}
// @Router       /marketplace/services [get]
func (h *CatalogHandler) ListActive(c *gin.Context) {
	entries, err := h.activationService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
