package listing

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Repository defines the interface for listing persistence
type Repository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindByVendor finds all listings owned by a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Listing, error)

	// FindActive finds published listings, optionally restricted to a catalog entry
	FindActive(ctx context.Context, entryID string, filter shared.Filter) ([]Listing, error)

	// Save creates or updates a listing
	Save(ctx context.Context, l *Listing) error

	// Count counts listings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Delete removes a listing
	Delete(ctx context.Context, id uuid.UUID) error
}
