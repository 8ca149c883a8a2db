package client

import (
	"context"
	"sync"
)

// SubscriptionStore holds the plan catalog, the pending selection and the
// active subscription. The pending selection is mirrored into a durable
// local store so it survives restarts; after login it is re-parked on the
// server under the user's key and replayed into Subscribe.
type SubscriptionStore struct {
	c     *Client
	local *LocalSelectionStore

	loading loadingFlag
	mu      sync.RWMutex
	plans   []Plan
	active  *Subscription
}

// NewSubscriptionStore creates a SubscriptionStore over the client and the
// durable local selection store.
func NewSubscriptionStore(c *Client, local *LocalSelectionStore) *SubscriptionStore {
	return &SubscriptionStore{c: c, local: local}
}

// Loading reports whether a store action is in flight.
func (s *SubscriptionStore) Loading() bool {
	return s.loading.Loading()
}

// Plans returns a copy of the fetched plan catalog.
func (s *SubscriptionStore) Plans() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Active returns the fetched active subscription, nil when absent.
func (s *SubscriptionStore) Active() *Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// PendingSelection returns the locally parked selection, if any.
func (s *SubscriptionStore) PendingSelection() (Selection, bool, error) {
	return s.local.Load()
}

// FetchPlans loads the plan catalog, replacing the held slice.
func (s *SubscriptionStore) FetchPlans(ctx context.Context) error {
	defer s.loading.begin()()

	plans, err := s.c.Subscriptions.Plans(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()
	return nil
}

// Select parks a plan choice both server-side under the given key and in
// the durable local store. deviceKey is an anonymous identifier before
// login.
func (s *SubscriptionStore) Select(ctx context.Context, deviceKey, tier, cycle string) error {
	defer s.loading.begin()()

	sel, err := s.c.Subscriptions.ParkSelection(ctx, deviceKey, tier, cycle)
	if err != nil {
		return err
	}
	return s.local.Save(*sel)
}

// ReplayAfterLogin re-parks the locally stored selection on the server
// under the user's key, so Subscribe can find it. A missing local
// selection is not an error; there is simply nothing to replay.
func (s *SubscriptionStore) ReplayAfterLogin(ctx context.Context, userKey string) error {
	defer s.loading.begin()()

	sel, found, err := s.local.Load()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	_, err = s.c.Subscriptions.ParkSelection(ctx, userKey, sel.Tier, sel.Cycle)
	return err
}

// Subscribe replays the parked selection into a subscription. The local
// slot is cleared only after the server confirms, so a failure leaves the
// choice intact for a retry.
func (s *SubscriptionStore) Subscribe(ctx context.Context) (*Subscription, error) {
	defer s.loading.begin()()

	sub, err := s.c.Subscriptions.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.local.Clear(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = sub
	s.mu.Unlock()
	return sub, nil
}

// FetchActive loads the vendor's active subscription.
func (s *SubscriptionStore) FetchActive(ctx context.Context) error {
	defer s.loading.begin()()

	sub, err := s.c.Subscriptions.Active(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.active = sub
	s.mu.Unlock()
	return nil
}
