package handler

import (
	"github.com/gin-gonic/gin"

	vendorapp "github.com/markethub/backend/internal/application/vendor"
	"github.com/markethub/backend/internal/domain/vendor"
)

// OnboardingHandler handles the vendor onboarding wizard endpoints. Each step
// has its own route; the service enforces step ordering and idempotent
// resubmission, the handler only binds and translates.
type OnboardingHandler struct {
	BaseHandler
	onboardingService *vendorapp.OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingService *vendorapp.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
	}
}

// Initialize godoc
// @Summary      Initialize vendor onboarding
// @Description  Create the vendor profile, or resume one already in progress
// @Tags         onboarding
// @Produce      json
// @Success      200 {object} dto.Response{data=vendorapp.InitializeResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/initialize [post]
func (h *OnboardingHandler) Initialize(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.onboardingService.Initialize(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitBusinessDetails godoc
// @Summary      Submit business details
// @Description  Complete step 1 of the onboarding wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body vendor.BusinessDetails true "Business details"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/business-details [put]
func (h *OnboardingHandler) SubmitBusinessDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vendor.BusinessDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.onboardingService.SubmitBusinessDetails(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitBusinessContact godoc
// @Summary      Submit business contact
// @Description  Complete step 2 of the onboarding wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body vendor.BusinessContact true "Business contact"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/business-contact [put]
func (h *OnboardingHandler) SubmitBusinessContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vendor.BusinessContact
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.onboardingService.SubmitBusinessContact(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitOwnerDetails godoc
// @Summary      Submit owner details
// @Description  Complete step 3 of the onboarding wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body vendor.OwnerDetails true "Owner details"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/owner-details [put]
func (h *OnboardingHandler) SubmitOwnerDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vendor.OwnerDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.onboardingService.SubmitOwnerDetails(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitContactPerson godoc
// @Summary      Submit contact person
// @Description  Complete step 4 of the onboarding wizard
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body vendor.ContactPerson true "Contact person"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/contact-person [put]
func (h *OnboardingHandler) SubmitContactPerson(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vendor.ContactPerson
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.onboardingService.SubmitContactPerson(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitBusinessAddress godoc
// @Summary      Submit business address
// @Description  Complete the final onboarding step; moves the profile into review
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body vendor.BusinessAddress true "Business address"
// @Success      200 {object} dto.Response{data=vendorapp.StepResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/business-address [put]
func (h *OnboardingHandler) SubmitBusinessAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req vendor.BusinessAddress
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.onboardingService.SubmitBusinessAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetProfile godoc
// @Summary      Get own vendor profile
// @Description  Get the authenticated user's vendor profile and wizard position
// @Tags         onboarding
// @Produce      json
// @Success      200 {object} dto.Response{data=vendorapp.ProfileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /onboarding/profile [get]
func (h *OnboardingHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.onboardingService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
