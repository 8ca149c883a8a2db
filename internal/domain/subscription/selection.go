package subscription

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// SelectionKey is the fixed key under which a pending selection is stored.
// It mirrors the single durable slot the storefront keeps between an
// unauthenticated plan choice and the post-login checkout.
const SelectionKey = "pending-subscription-selection"

// Selection is an ephemeral, not-yet-persisted plan choice captured before
// authentication. It is held in a durable store and replayed into Subscribe
// once the user has signed in.
type Selection struct {
	Tier     Tier            `json:"tier"`
	Cycle    BillingCycle    `json:"cycle"`
	Price    decimal.Decimal `json:"price"`
	Features []string        `json:"features"`
}

// Validate checks the selection against the offered plans
func (s Selection) Validate(plans []Plan) error {
	plan, ok := FindPlan(plans, s.Tier)
	if !ok {
		return shared.NewDomainError("UNKNOWN_PLAN", "Selected plan is not offered")
	}
	if s.Cycle != CycleMonthly && s.Cycle != CycleAnnual {
		return shared.NewDomainError("INVALID_CYCLE", "Billing cycle must be monthly or annual")
	}
	if !s.Price.Equal(plan.PriceFor(s.Cycle)) {
		return shared.NewDomainError("PRICE_MISMATCH", "Selection price does not match the offered plan")
	}
	return nil
}

// SelectionStore is a durable store for pending selections, keyed per user.
// Implementations must survive process restarts (Redis, file-backed client
// store); Clear after a successful subscribe leaves the slot absent.
type SelectionStore interface {
	// Put stores the pending selection for a user
	Put(ctx context.Context, userKey string, sel Selection) error

	// Get retrieves the pending selection; found is false when absent
	Get(ctx context.Context, userKey string) (sel Selection, found bool, err error)

	// Clear removes the pending selection
	Clear(ctx context.Context, userKey string) error
}
