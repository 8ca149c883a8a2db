package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/markethub/backend/internal/application/trade"
)

// ReviewHandler handles customer reviews on listings and their moderation
type ReviewHandler struct {
	BaseHandler
	reviewService *tradeapp.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *tradeapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create godoc
// @Summary      Review a listing
// @Description  Only customers with a completed order for the listing may review it
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateReviewRequest true "Rating and comment"
// @Success      201 {object} dto.Response{data=tradeapp.ReviewResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// ListByListing godoc
// @Summary      List visible reviews for a listing
// @Tags         marketplace
// @Produce      json
// @Param        listingId path string true "Listing ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]tradeapp.ReviewResponse}
// @Router       /marketplace/listings/{listingId}/reviews [get]
func (h *ReviewHandler) ListByListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("listingId"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	reviews, err := h.reviewService.ListByListing(c.Request.Context(), listingID, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Hide godoc
// @Summary      Hide a review
// @Tags         admin-reviews
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} dto.Response{data=tradeapp.ReviewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reviews/{id}/hide [post]
func (h *ReviewHandler) Hide(c *gin.Context) {
	h.moderate(c, h.reviewService.Hide)
}

// Show godoc
// @Summary      Restore a hidden review
// @Tags         admin-reviews
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} dto.Response{data=tradeapp.ReviewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reviews/{id}/show [post]
func (h *ReviewHandler) Show(c *gin.Context) {
	h.moderate(c, h.reviewService.Show)
}

func (h *ReviewHandler) moderate(
	c *gin.Context,
	action func(ctx context.Context, id uuid.UUID) (*tradeapp.ReviewResponse, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	review, err := action(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}
