package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/subscription"
)

// SelectPlanRequest captures a plan choice before checkout
type SelectPlanRequest struct {
	Tier  subscription.Tier         `json:"tier" binding:"required"`
	Cycle subscription.BillingCycle `json:"cycle" binding:"required"`
}

// SelectionResponse is the stored pending selection, or absent
type SelectionResponse struct {
	Found     bool                    `json:"found"`
	Selection *subscription.Selection `json:"selection,omitempty"`
}

// SubscriptionResponse is the API-facing view of a subscription
type SubscriptionResponse struct {
	ID               uuid.UUID                       `json:"id"`
	VendorID         uuid.UUID                       `json:"vendor_id"`
	Tier             subscription.Tier               `json:"tier"`
	Cycle            subscription.BillingCycle       `json:"cycle"`
	Price            decimal.Decimal                 `json:"price"`
	Status           subscription.SubscriptionStatus `json:"status"`
	CurrentPeriodEnd time.Time                       `json:"current_period_end"`
	CreatedAt        time.Time                       `json:"created_at"`
}

// ToSubscriptionResponse converts a domain subscription to its response form
func ToSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:               s.ID,
		VendorID:         s.VendorID,
		Tier:             s.Tier,
		Cycle:            s.Cycle,
		Price:            s.Price,
		Status:           s.Status,
		CurrentPeriodEnd: s.CurrentPeriodEnd,
		CreatedAt:        s.CreatedAt,
	}
}
