package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Activation is the persisted record of whether a catalog entry is offered on
// the platform. Records are created lazily the first time an entry is managed;
// the record's ID, not the entry title, is the join key for later updates.
type Activation struct {
	shared.BaseAggregateRoot
	EntryID  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Title    string `gorm:"type:varchar(200);not null"`
	IsActive bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Activation) TableName() string {
	return "service_activations"
}

// NewActivation creates an activation record for a catalog entry
func NewActivation(entry Entry) (*Activation, error) {
	if strings.TrimSpace(entry.ID) == "" || strings.TrimSpace(entry.Title) == "" {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Catalog entry must have an ID and title")
	}

	activation := &Activation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntryID:           entry.ID,
		Title:             entry.Title,
		IsActive:          false,
	}

	activation.AddDomainEvent(NewActivationCreatedEvent(activation))

	return activation, nil
}

// SetActive toggles the activation. Returns true when the state changed.
func (a *Activation) SetActive(active bool) bool {
	if a.IsActive == active {
		return false
	}
	a.IsActive = active
	a.AddDomainEvent(NewActivationToggledEvent(a))
	return true
}

// Partition splits the catalog into the active and available sets using the
// activation records. Every entry lands in exactly one of the two sets: an
// entry is active when a record for it exists and is switched on, available
// otherwise.
func Partition(entries []Entry, activations []Activation) (active, available []Entry) {
	activeByEntry := make(map[string]bool, len(activations))
	for _, a := range activations {
		activeByEntry[a.EntryID] = a.IsActive
	}

	for _, e := range entries {
		if activeByEntry[e.ID] {
			active = append(active, e)
		} else {
			available = append(available, e)
		}
	}
	return active, available
}

// Events

const AggregateTypeActivation = "ServiceActivation"

const (
	EventTypeActivationCreated = "ServiceActivationCreated"
	EventTypeActivationToggled = "ServiceActivationToggled"
)

// ActivationCreatedEvent is published when an activation record is created
type ActivationCreatedEvent struct {
	shared.BaseDomainEvent
	ActivationID uuid.UUID `json:"activation_id"`
	EntryID      string    `json:"entry_id"`
	Title        string    `json:"title"`
}

// NewActivationCreatedEvent creates a new ActivationCreatedEvent
func NewActivationCreatedEvent(a *Activation) *ActivationCreatedEvent {
	return &ActivationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivationCreated, AggregateTypeActivation, a.ID),
		ActivationID:    a.ID,
		EntryID:         a.EntryID,
		Title:           a.Title,
	}
}

// ActivationToggledEvent is published when an activation flips state
type ActivationToggledEvent struct {
	shared.BaseDomainEvent
	ActivationID uuid.UUID `json:"activation_id"`
	EntryID      string    `json:"entry_id"`
	IsActive     bool      `json:"is_active"`
}

// NewActivationToggledEvent creates a new ActivationToggledEvent
func NewActivationToggledEvent(a *Activation) *ActivationToggledEvent {
	return &ActivationToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivationToggled, AggregateTypeActivation, a.ID),
		ActivationID:    a.ID,
		EntryID:         a.EntryID,
		IsActive:        a.IsActive,
	}
}
