package trade

import (
	"strings"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Review is a customer's rating of a listing
type Review struct {
	shared.BaseAggregateRoot
	ListingID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	Hidden     bool      `gorm:"not null;default:false"` // Set by admin moderation
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a 1-5 rating
func NewReview(listingID, customerID uuid.UUID, rating int, comment string) (*Review, error) {
	if listingID == uuid.Nil || customerID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ListingID:         listingID,
		CustomerID:        customerID,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
	}, nil
}

// Hide removes the review from public display. Admin action.
func (r *Review) Hide() {
	r.Hidden = true
}

// Show restores a hidden review. Admin action.
func (r *Review) Show() {
	r.Hidden = false
}
