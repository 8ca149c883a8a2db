package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/domain/subscription"
	"github.com/markethub/backend/internal/infrastructure/telemetry"
)

// Service handles the select-then-subscribe flow: a plan choice is validated
// and parked in a durable store, then replayed into a persisted subscription
// once the vendor is authenticated. The stored selection is cleared only
// after the subscription write succeeds.
type Service struct {
	subscriptionRepo subscription.Repository
	selectionStore   subscription.SelectionStore
	plans            []subscription.Plan
	businessMetrics  *telemetry.BusinessMetrics
}

// NewService creates a subscription Service over the built-in plan set
func NewService(subscriptionRepo subscription.Repository, selectionStore subscription.SelectionStore) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		selectionStore:   selectionStore,
		plans:            subscription.DefaultPlans(),
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Plans returns the offered subscription plans
func (s *Service) Plans() []subscription.Plan {
	return s.plans
}

// SelectPlan validates a plan choice and parks it in the durable store. The
// stored selection carries the full plan snapshot so checkout can render it
// without a second catalog lookup.
func (s *Service) SelectPlan(ctx context.Context, userKey string, req SelectPlanRequest) (*subscription.Selection, error) {
	plan, ok := subscription.FindPlan(s.plans, req.Tier)
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_PLAN", "Selected plan is not offered")
	}

	sel := subscription.Selection{
		Tier:     plan.Tier,
		Cycle:    req.Cycle,
		Price:    plan.PriceFor(req.Cycle),
		Features: plan.Features,
	}
	if err := sel.Validate(s.plans); err != nil {
		return nil, err
	}

	if err := s.selectionStore.Put(ctx, userKey, sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

// GetSelection returns the pending selection for a user, if one is stored
func (s *Service) GetSelection(ctx context.Context, userKey string) (*SelectionResponse, error) {
	sel, found, err := s.selectionStore.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return &SelectionResponse{Found: false}, nil
	}
	return &SelectionResponse{Found: true, Selection: &sel}, nil
}

// ClearSelection drops the pending selection without subscribing
func (s *Service) ClearSelection(ctx context.Context, userKey string) error {
	return s.selectionStore.Clear(ctx, userKey)
}

// Subscribe replays the stored selection into a persisted subscription for
// the vendor. The selection slot is cleared only after the save succeeds, so
// a failed subscribe leaves the choice intact for a retry.
func (s *Service) Subscribe(ctx context.Context, userKey string, vendorID uuid.UUID) (*SubscriptionResponse, error) {
	sel, found, err := s.selectionStore.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, shared.NewDomainError("NO_SELECTION", "No pending plan selection to subscribe with")
	}

	existing, err := s.subscriptionRepo.FindActiveByVendor(ctx, vendorID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_SUBSCRIBED", "Vendor already has an active subscription")
	}

	sub, err := subscription.NewSubscription(vendorID, sel, s.plans)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.selectionStore.Clear(ctx, userKey); err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordSubscription(ctx, string(sub.Tier), string(sub.Cycle))
	}

	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// GetActive returns the vendor's active subscription
func (s *Service) GetActive(ctx context.Context, vendorID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// Cancel cancels the vendor's active subscription
func (s *Service) Cancel(ctx context.Context, vendorID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := sub.Cancel(); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}
