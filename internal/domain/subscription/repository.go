package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	// FindByID finds a subscription by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByVendor finds the subscriptions of a vendor, newest first
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]Subscription, error)

	// FindActiveByVendor finds the vendor's active subscription, if any
	FindActiveByVendor(ctx context.Context, vendorID uuid.UUID) (*Subscription, error)

	// FindAll finds all subscriptions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, sub *Subscription) error
}
