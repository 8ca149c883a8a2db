package handler

import (
	"context"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	listingapp "github.com/markethub/backend/internal/application/listing"
	vendorapp "github.com/markethub/backend/internal/application/vendor"
	"github.com/markethub/backend/internal/domain/listing"
)

// ListingHandler handles listing creation through the dynamic category form,
// image uploads, publication, and marketplace browsing
type ListingHandler struct {
	BaseHandler
	listingService    *listingapp.Service
	onboardingService *vendorapp.OnboardingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *listingapp.Service, onboardingService *vendorapp.OnboardingService) *ListingHandler {
	return &ListingHandler{
		listingService:    listingService,
		onboardingService: onboardingService,
	}
}

// SwitchCategoryRequest carries the target group and the values entered so far
type SwitchCategoryRequest struct {
	Group  listing.CategoryGroup `json:"group" binding:"required"`
	Values map[string]string     `json:"values"`
}

// vendorID resolves the caller's approved vendor profile
func (h *ListingHandler) vendorID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	vendorID, err := h.onboardingService.ApprovedVendorID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return vendorID, true
}

// Form godoc
// @Summary      Get the listing form for a category group
// @Description  Returns the visible field subset for the group in schema order
// @Tags         listings
// @Produce      json
// @Param        group query string true "Category group"
// @Success      200 {object} dto.Response{data=listingapp.FormView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/form [get]
func (h *ListingHandler) Form(c *gin.Context) {
	form, err := h.listingService.Form(listing.CategoryGroup(c.Query("group")))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, form)
}

// SwitchCategory godoc
// @Summary      Switch the form to another category group
// @Description  Re-renders the form for the new group; the retention policy decides which entered values survive
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body SwitchCategoryRequest true "Target group and current values"
// @Success      200 {object} dto.Response{data=listingapp.FormView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/form/switch [post]
func (h *ListingHandler) SwitchCategory(c *gin.Context) {
	var req SwitchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	form, err := h.listingService.SwitchCategory(req.Group, req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, form)
}

// Create godoc
// @Summary      Create a listing
// @Description  Validates the dynamic form submission and persists a draft listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body listingapp.CreateListingRequest true "Form submission"
// @Success      201 {object} dto.Response{data=listingapp.ListingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	vendorID, ok := h.vendorID(c)
	if !ok {
		return
	}

	var req listingapp.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.listingService.Create(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UploadImages godoc
// @Summary      Upload listing images
// @Description  Accepts a multipart batch; valid files are stored even when siblings are rejected, and per-file errors ride back alongside the accepted keys
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Param        images formData file true "Image files"
// @Param        existing formData int false "Number of images already attached"
// @Success      200 {object} dto.Response{data=listingapp.ImageUploadResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/images [post]
func (h *ListingHandler) UploadImages(c *gin.Context) {
	vendorID, ok := h.vendorID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		h.BadRequest(c, "No files provided")
		return
	}

	existing, _ := strconv.Atoi(c.PostForm("existing"))

	files := make([]listingapp.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.BadRequest(c, "Unable to read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.BadRequest(c, "Unable to read uploaded file")
			return
		}
		files = append(files, listingapp.UploadFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result, err := h.listingService.UploadImages(c.Request.Context(), vendorID, existing, files)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get godoc
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response{data=listingapp.ListingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	resp, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMine godoc
// @Summary      List the caller's listings
// @Tags         listings
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]listingapp.ListingResponse}
// @Security     BearerAuth
// @Router       /listings/mine [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	vendorID, ok := h.vendorID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.ListByVendor(c.Request.Context(), vendorID, parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listings)
}

// ListActive godoc
// @Summary      Browse published listings
// @Description  Public marketplace view, optionally narrowed to one catalog entry
// @Tags         marketplace
// @Produce      json
// @Param        entry_id query string false "Catalog entry ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]listingapp.ListingResponse}
// @Router       /marketplace/listings [get]
func (h *ListingHandler) ListActive(c *gin.Context) {
	listings, err := h.listingService.ListActive(c.Request.Context(), c.Query("entry_id"), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listings)
}

// Publish godoc
// @Summary      Publish a listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response{data=listingapp.ListingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/{id}/publish [post]
func (h *ListingHandler) Publish(c *gin.Context) {
	h.mutate(c, h.listingService.Publish)
}

// Unpublish godoc
// @Summary      Unpublish a listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} dto.Response{data=listingapp.ListingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /listings/{id}/unpublish [post]
func (h *ListingHandler) Unpublish(c *gin.Context) {
	h.mutate(c, h.listingService.Unpublish)
}

func (h *ListingHandler) mutate(
	c *gin.Context,
	action func(ctx context.Context, vendorID, id uuid.UUID) (*listingapp.ListingResponse, error),
) {
	vendorID, ok := h.vendorID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	resp, err := action(c.Request.Context(), vendorID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
