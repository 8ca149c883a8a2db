package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	vendorapp "github.com/markethub/backend/internal/application/vendor"
	"github.com/markethub/backend/internal/domain/vendor"
)

// VendorReviewHandler handles admin moderation of vendor applications
type VendorReviewHandler struct {
	BaseHandler
	reviewService *vendorapp.ReviewService
}

// NewVendorReviewHandler creates a new vendor review handler
func NewVendorReviewHandler(reviewService *vendorapp.ReviewService) *VendorReviewHandler {
	return &VendorReviewHandler{
		reviewService: reviewService,
	}
}

// ReviewNoteRequest carries an optional moderation note
type ReviewNoteRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// List godoc
// @Summary      List vendor applications
// @Description  List vendor profiles, filtered by status (defaults to pending)
// @Tags         admin-vendors
// @Produce      json
// @Param        status query string false "Profile status" Enums(onboarding, pending, approved, rejected)
// @Success      200 {object} dto.Response{data=[]vendorapp.ProfileResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors [get]
func (h *VendorReviewHandler) List(c *gin.Context) {
	status := vendor.ProfileStatus(c.DefaultQuery("status", string(vendor.ProfileStatusPending)))

	profiles, err := h.reviewService.List(c.Request.Context(), status, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profiles)
}

// Get godoc
// @Summary      Get a vendor application
// @Tags         admin-vendors
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200 {object} dto.Response{data=vendorapp.ProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id} [get]
func (h *VendorReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// Approve godoc
// @Summary      Approve a vendor application
// @Tags         admin-vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Profile ID"
// @Param        request body ReviewNoteRequest false "Optional note"
// @Success      200 {object} dto.Response{data=vendorapp.ProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/approve [post]
func (h *VendorReviewHandler) Approve(c *gin.Context) {
	h.moderate(c, h.reviewService.Approve)
}

// Reject godoc
// @Summary      Reject a vendor application
// @Tags         admin-vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Profile ID"
// @Param        request body ReviewNoteRequest false "Optional note"
// @Success      200 {object} dto.Response{data=vendorapp.ProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/reject [post]
func (h *VendorReviewHandler) Reject(c *gin.Context) {
	h.moderate(c, h.reviewService.Reject)
}

// Reopen godoc
// @Summary      Reopen a rejected application
// @Description  Send a rejected profile back into onboarding so the vendor can fix and resubmit
// @Tags         admin-vendors
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200 {object} dto.Response{data=vendorapp.ProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/vendors/{id}/reopen [post]
func (h *VendorReviewHandler) Reopen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.reviewService.Reopen(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// moderate runs an approve/reject action sharing the bind-parse-respond shape
func (h *VendorReviewHandler) moderate(
	c *gin.Context,
	action func(ctx context.Context, id uuid.UUID, note string) (*vendorapp.ProfileResponse, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	var req ReviewNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := action(c.Request.Context(), id, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
