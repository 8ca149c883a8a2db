package listing

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// Status represents the publication status of a listing
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidationError carries the field-to-message map of a rejected submission
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "listing validation failed for " + strconv.Itoa(len(e.Fields)) + " field(s)"
}

// Listing is a vendor's offering created through the dynamic category form.
// Category-specific fields live in Attributes as the schema-coerced payload.
type Listing struct {
	shared.BaseAggregateRoot
	VendorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryID    string          `gorm:"type:varchar(100);not null;index"` // Catalog entry offering this listing
	Group      CategoryGroup   `gorm:"type:varchar(50);not null"`
	Title      string          `gorm:"type:varchar(200);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status     Status          `gorm:"type:varchar(20);not null;default:'draft'"`
	Attributes string          `gorm:"type:jsonb"` // Coerced dynamic form payload
	ImageKeys  string          `gorm:"type:jsonb"` // Object storage keys of accepted images
}

// TableName returns the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// NewListing validates the dynamic form values against the schema for the
// selected category group and creates a draft listing. A failed validation
// returns a *ValidationError holding the per-field messages; nothing is
// persisted in that case.
func NewListing(vendorID uuid.UUID, entryID string, group CategoryGroup, schema Schema, values map[string]string, imageKeys []string) (*Listing, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID is required")
	}
	if entryID == "" {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Catalog entry ID is required")
	}
	if _, ok := schema.Visible[group]; !ok {
		return nil, shared.NewDomainError("INVALID_GROUP", "Unknown category group")
	}

	if errs := schema.Validate(group, values); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if err := CheckImageCount(len(imageKeys)); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"images": err.Error()}}
	}

	payload := schema.Coerce(group, values)

	price := decimal.Zero
	if raw, ok := payload["price"].(float64); ok {
		price = decimal.NewFromFloat(raw)
	}

	attrs, err := json.Marshal(payload)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTES", "Failed to encode listing attributes")
	}
	keys, err := json.Marshal(imageKeys)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGES", "Failed to encode image keys")
	}

	title, _ := payload["title"].(string)

	return &Listing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		EntryID:           entryID,
		Group:             group,
		Title:             title,
		Price:             price,
		Status:            StatusDraft,
		Attributes:        string(attrs),
		ImageKeys:         string(keys),
	}, nil
}

// Publish makes a draft or inactive listing visible to customers
func (l *Listing) Publish() error {
	if l.Status == StatusActive {
		return shared.ErrInvalidState
	}
	l.Status = StatusActive
	return nil
}

// Unpublish hides an active listing
func (l *Listing) Unpublish() error {
	if l.Status != StatusActive {
		return shared.ErrInvalidState
	}
	l.Status = StatusInactive
	return nil
}

// AttributeMap decodes the stored dynamic payload
func (l *Listing) AttributeMap() (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(l.Attributes), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Images decodes the stored image keys
func (l *Listing) Images() ([]string, error) {
	var keys []string
	if err := json.Unmarshal([]byte(l.ImageKeys), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
