package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// ActivationService manages which catalog entries the platform offers. The
// entry set itself is static; this service owns the persisted on/off records.
type ActivationService struct {
	activationRepo catalog.ActivationRepository
	entries        []catalog.Entry
}

// NewActivationService creates a new ActivationService over the built-in catalog
func NewActivationService(activationRepo catalog.ActivationRepository) *ActivationService {
	return &ActivationService{
		activationRepo: activationRepo,
		entries:        catalog.DefaultEntries(),
	}
}

// ListManaged returns the admin view: every catalog entry in exactly one of
// the active/available sets, with record IDs attached where records exist.
func (s *ActivationService) ListManaged(ctx context.Context) (*ManagedCatalog, error) {
	activations, err := s.activationRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	recordByEntry := make(map[string]*catalog.Activation, len(activations))
	for i := range activations {
		recordByEntry[activations[i].EntryID] = &activations[i]
	}

	active, available := catalog.Partition(s.entries, activations)

	view := &ManagedCatalog{
		Active:    make([]EntryView, 0, len(active)),
		Available: make([]EntryView, 0, len(available)),
	}
	for _, e := range active {
		view.Active = append(view.Active, s.entryView(e, recordByEntry[e.ID]))
	}
	for _, e := range available {
		view.Available = append(view.Available, s.entryView(e, recordByEntry[e.ID]))
	}
	return view, nil
}

// ListActive returns the entries currently offered, for vendor-facing surfaces
func (s *ActivationService) ListActive(ctx context.Context) ([]EntryView, error) {
	activations, err := s.activationRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	recordByEntry := make(map[string]*catalog.Activation, len(activations))
	for i := range activations {
		recordByEntry[activations[i].EntryID] = &activations[i]
	}

	active, _ := catalog.Partition(s.entries, activations)
	views := make([]EntryView, 0, len(active))
	for _, e := range active {
		views = append(views, s.entryView(e, recordByEntry[e.ID]))
	}
	return views, nil
}

// Activate switches a catalog entry on, creating its record on first use
func (s *ActivationService) Activate(ctx context.Context, entryID string) (*ActivationResponse, error) {
	return s.setActive(ctx, entryID, true)
}

// Deactivate switches a catalog entry off. The record is kept so the entry's
// history survives; the entry simply moves back to the available set.
func (s *ActivationService) Deactivate(ctx context.Context, entryID string) (*ActivationResponse, error) {
	return s.setActive(ctx, entryID, false)
}

// Toggle flips an existing activation record by its record ID
func (s *ActivationService) Toggle(ctx context.Context, id uuid.UUID) (*ActivationResponse, error) {
	activation, err := s.activationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if activation.SetActive(!activation.IsActive) {
		if err := s.activationRepo.Save(ctx, activation); err != nil {
			return nil, err
		}
	}

	resp := ToActivationResponse(activation)
	return &resp, nil
}

func (s *ActivationService) setActive(ctx context.Context, entryID string, active bool) (*ActivationResponse, error) {
	activation, err := s.ensureRecord(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if activation.SetActive(active) {
		if err := s.activationRepo.Save(ctx, activation); err != nil {
			return nil, err
		}
	}

	resp := ToActivationResponse(activation)
	return &resp, nil
}

// ensureRecord returns the activation record for an entry, creating and
// persisting it on first use so later calls can address it by record ID.
func (s *ActivationService) ensureRecord(ctx context.Context, entryID string) (*catalog.Activation, error) {
	existing, err := s.activationRepo.FindByEntryID(ctx, entryID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	entry, ok := s.findEntry(entryID)
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_ENTRY", "No such catalog entry")
	}

	activation, err := catalog.NewActivation(entry)
	if err != nil {
		return nil, err
	}
	if err := s.activationRepo.Save(ctx, activation); err != nil {
		return nil, err
	}
	return activation, nil
}

func (s *ActivationService) findEntry(entryID string) (catalog.Entry, bool) {
	for _, e := range s.entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return catalog.Entry{}, false
}

func (s *ActivationService) entryView(e catalog.Entry, record *catalog.Activation) EntryView {
	view := EntryView{
		EntryID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		Icon:        e.Icon,
		Group:       e.Group,
		Keywords:    e.Keywords,
	}
	if record != nil {
		id := record.ID
		view.ActivationID = &id
		view.IsActive = record.IsActive
	}
	return view
}
