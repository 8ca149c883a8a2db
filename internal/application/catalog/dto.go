package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
)

// EntryView is a catalog entry joined with its activation record, when one
// exists. ActivationID is the key later toggle calls must use.
type EntryView struct {
	ActivationID *uuid.UUID    `json:"activation_id,omitempty"`
	EntryID      string        `json:"entry_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Icon         string        `json:"icon"`
	Group        catalog.Group `json:"group"`
	Keywords     []string      `json:"keywords"`
	IsActive     bool          `json:"is_active"`
}

// ManagedCatalog is the admin view of the service catalog: the full entry set
// partitioned into what the platform currently offers and what it could.
type ManagedCatalog struct {
	Active    []EntryView `json:"active"`
	Available []EntryView `json:"available"`
}

// ActivationResponse is the API-facing view of an activation record
type ActivationResponse struct {
	ID        uuid.UUID `json:"id"`
	EntryID   string    `json:"entry_id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToActivationResponse converts a domain activation to its response form
func ToActivationResponse(a *catalog.Activation) ActivationResponse {
	return ActivationResponse{
		ID:        a.ID,
		EntryID:   a.EntryID,
		Title:     a.Title,
		IsActive:  a.IsActive,
		UpdatedAt: a.UpdatedAt,
	}
}
