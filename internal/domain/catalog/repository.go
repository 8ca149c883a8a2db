package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// ActivationRepository defines the interface for activation persistence
type ActivationRepository interface {
	// FindByID finds an activation record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Activation, error)

	// FindByEntryID finds the activation record for a catalog entry
	FindByEntryID(ctx context.Context, entryID string) (*Activation, error)

	// FindAll returns every activation record
	FindAll(ctx context.Context, filter shared.Filter) ([]Activation, error)

	// FindActive returns activation records that are switched on
	FindActive(ctx context.Context) ([]Activation, error)

	// Save creates or updates an activation record
	Save(ctx context.Context, activation *Activation) error

	// Delete removes an activation record
	Delete(ctx context.Context, id uuid.UUID) error
}
