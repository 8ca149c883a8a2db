package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subscriptionapp "github.com/markethub/backend/internal/application/subscription"
	vendorapp "github.com/markethub/backend/internal/application/vendor"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// SelectionKeyHeader identifies the durable selection slot for callers who
// have not authenticated yet. Authenticated callers are keyed by user ID, so
// a selection parked before login is replayed by sending the same header.
const SelectionKeyHeader = "X-Selection-Key"

// SubscriptionHandler handles plan discovery, durable plan selection, and
// subscription lifecycle
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *subscriptionapp.Service
	onboardingService   *vendorapp.OnboardingService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService *subscriptionapp.Service, onboardingService *vendorapp.OnboardingService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		onboardingService:   onboardingService,
	}
}

// selectionKey prefers the authenticated user ID and falls back to the
// client-supplied header for pre-auth selections
func (h *SubscriptionHandler) selectionKey(c *gin.Context) (string, bool) {
	if userID := middleware.GetJWTUserID(c); userID != "" {
		return userID, true
	}
	if key := c.GetHeader(SelectionKeyHeader); key != "" {
		return key, true
	}
	h.BadRequest(c, "Missing "+SelectionKeyHeader+" header")
	return "", false
}

// Plans godoc
// @Summary      List subscription plans
// @Tags         plans
// @Produce      json
// @Success      200 {object} dto.Response{data=[]subscription.Plan}
// @Router       /plans [get]
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	h.Success(c, h.subscriptionService.Plans())
}

// SelectPlan godoc
// @Summary      Select a plan
// @Description  Parks the plan choice in the durable selection store so it survives until checkout
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        X-Selection-Key header string false "Selection slot for unauthenticated callers"
// @Param        request body subscriptionapp.SelectPlanRequest true "Tier and billing cycle"
// @Success      200 {object} dto.Response{data=subscription.Selection}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /plans/selection [put]
func (h *SubscriptionHandler) SelectPlan(c *gin.Context) {
	key, ok := h.selectionKey(c)
	if !ok {
		return
	}

	var req subscriptionapp.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	sel, err := h.subscriptionService.SelectPlan(c.Request.Context(), key, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sel)
}

// GetSelection godoc
// @Summary      Get the pending plan selection
// @Tags         plans
// @Produce      json
// @Param        X-Selection-Key header string false "Selection slot for unauthenticated callers"
// @Success      200 {object} dto.Response{data=subscriptionapp.SelectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /plans/selection [get]
func (h *SubscriptionHandler) GetSelection(c *gin.Context) {
	key, ok := h.selectionKey(c)
	if !ok {
		return
	}

	sel, err := h.subscriptionService.GetSelection(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sel)
}

// ClearSelection godoc
// @Summary      Clear the pending plan selection
// @Tags         plans
// @Produce      json
// @Param        X-Selection-Key header string false "Selection slot for unauthenticated callers"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /plans/selection [delete]
func (h *SubscriptionHandler) ClearSelection(c *gin.Context) {
	key, ok := h.selectionKey(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.ClearSelection(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Subscribe godoc
// @Summary      Subscribe using the stored selection
// @Description  Replays the parked selection into a subscription for the caller's vendor profile; the slot is cleared only after the save succeeds
// @Tags         subscriptions
// @Produce      json
// @Success      201 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	vendorID, err := h.onboardingService.ApprovedVendorID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), userID.String(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sub)
}

// GetActive godoc
// @Summary      Get the caller's active subscription
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions/active [get]
func (h *SubscriptionHandler) GetActive(c *gin.Context) {
	vendorID, ok := h.resolveVendor(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetActive(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

// Cancel godoc
// @Summary      Cancel the caller's active subscription
// @Tags         subscriptions
// @Produce      json
// @Success      200 {object} dto.Response{data=subscriptionapp.SubscriptionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscriptions/active [delete]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	vendorID, ok := h.resolveVendor(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Cancel(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sub)
}

func (h *SubscriptionHandler) resolveVendor(c *gin.Context) (vendorID uuid.UUID, ok bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	vendorID, err = h.onboardingService.ApprovedVendorID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return vendorID, true
}
