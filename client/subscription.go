package client

import (
	"context"
	"net/http"
)

// SelectionKeyHeader names the header carrying the durable selection slot
// key on the unauthenticated plan endpoints.
const SelectionKeyHeader = "X-Selection-Key"

// SubscriptionGateway covers the plan catalog, the durable pre-auth
// selection slot and the subscription itself.
//
// The plan endpoints are public, so the slot is addressed by an explicit
// key in the X-Selection-Key header: an anonymous device key before login,
// the user ID afterwards. Subscribe reads the slot under the caller's user
// ID, so a selection parked before login must be re-parked under the user
// key once authenticated (see SubscriptionStore.ReplayAfterLogin).
type SubscriptionGateway struct {
	c *Client
}

func selectionHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{SelectionKeyHeader: key}
}

// Plans returns the offered subscription plans.
func (g *SubscriptionGateway) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := g.c.do(ctx, http.MethodGet, "/plans", nil, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ParkSelection validates the plan choice server-side and stores it in the
// durable slot under the given key.
func (g *SubscriptionGateway) ParkSelection(ctx context.Context, key, tier, cycle string) (*Selection, error) {
	body := map[string]string{"tier": tier, "cycle": cycle}
	var sel Selection
	if err := g.c.do(ctx, http.MethodPut, "/plans/selection", body, selectionHeaders(key), &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

// GetSelection reads the slot under the given key.
func (g *SubscriptionGateway) GetSelection(ctx context.Context, key string) (*SelectionSlot, error) {
	var slot SelectionSlot
	if err := g.c.do(ctx, http.MethodGet, "/plans/selection", nil, selectionHeaders(key), &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ClearSelection empties the slot under the given key.
func (g *SubscriptionGateway) ClearSelection(ctx context.Context, key string) error {
	return g.c.do(ctx, http.MethodDelete, "/plans/selection", nil, selectionHeaders(key), nil)
}

// Subscribe replays the selection parked under the caller's user ID into a
// persisted subscription. Requires an approved vendor profile.
func (g *SubscriptionGateway) Subscribe(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := g.c.do(ctx, http.MethodPost, "/subscriptions", nil, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Active returns the vendor's active subscription.
func (g *SubscriptionGateway) Active(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := g.c.do(ctx, http.MethodGet, "/subscriptions/active", nil, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Cancel cancels the vendor's active subscription.
func (g *SubscriptionGateway) Cancel(ctx context.Context) error {
	return g.c.do(ctx, http.MethodDelete, "/subscriptions/active", nil, nil, nil)
}
