package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/listing"
)

// FormView is the renderable form for a category group: the active field
// subset in schema order plus the values to prefill.
type FormView struct {
	Group  listing.CategoryGroup `json:"group"`
	Fields []listing.FieldSpec   `json:"fields"`
	Values map[string]string     `json:"values"`
}

// CreateListingRequest carries a dynamic form submission
type CreateListingRequest struct {
	EntryID   string                `json:"entry_id" binding:"required"`
	Group     listing.CategoryGroup `json:"group" binding:"required"`
	Values    map[string]string     `json:"values" binding:"required"`
	ImageKeys []string              `json:"image_keys"`
}

// ListingResponse is the API-facing view of a listing
type ListingResponse struct {
	ID         uuid.UUID              `json:"id"`
	VendorID   uuid.UUID              `json:"vendor_id"`
	EntryID    string                 `json:"entry_id"`
	Group      listing.CategoryGroup  `json:"group"`
	Title      string                 `json:"title"`
	Price      decimal.Decimal        `json:"price"`
	Status     listing.Status         `json:"status"`
	Attributes map[string]interface{} `json:"attributes"`
	Images     []string               `json:"images"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ToListingResponse converts a domain listing to its response form
func ToListingResponse(l *listing.Listing) (ListingResponse, error) {
	attrs, err := l.AttributeMap()
	if err != nil {
		return ListingResponse{}, err
	}
	images, err := l.Images()
	if err != nil {
		return ListingResponse{}, err
	}
	return ListingResponse{
		ID:         l.ID,
		VendorID:   l.VendorID,
		EntryID:    l.EntryID,
		Group:      l.Group,
		Title:      l.Title,
		Price:      l.Price,
		Status:     l.Status,
		Attributes: attrs,
		Images:     images,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}, nil
}

// ImageUploadResult reports a batch image upload: accepted files with their
// storage keys alongside per-file rejections.
type ImageUploadResult struct {
	Accepted []AcceptedImage      `json:"accepted"`
	Rejected []listing.ImageError `json:"rejected"`
}

// AcceptedImage is one stored image from an upload batch
type AcceptedImage struct {
	FileName   string `json:"file_name"`
	StorageKey string `json:"storage_key"`
}
