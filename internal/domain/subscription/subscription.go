package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// SubscriptionStatus represents the lifecycle status of a subscription
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Subscription is a vendor's committed plan, created when a stored selection
// is replayed through the subscribe call.
type Subscription struct {
	shared.BaseAggregateRoot
	VendorID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	Tier             Tier               `gorm:"type:varchar(20);not null"`
	Cycle            BillingCycle       `gorm:"type:varchar(20);not null"`
	Price            decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Status           SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CurrentPeriodEnd time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates an active subscription from a validated selection
func NewSubscription(vendorID uuid.UUID, sel Selection, plans []Plan) (*Subscription, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID is required")
	}
	if err := sel.Validate(plans); err != nil {
		return nil, err
	}

	periodEnd := time.Now().AddDate(0, 1, 0)
	if sel.Cycle == CycleAnnual {
		periodEnd = time.Now().AddDate(1, 0, 0)
	}

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		Tier:              sel.Tier,
		Cycle:             sel.Cycle,
		Price:             sel.Price,
		Status:            StatusActive,
		CurrentPeriodEnd:  periodEnd,
	}, nil
}

// Cancel marks the subscription as canceled
func (s *Subscription) Cancel() error {
	if s.Status == StatusCanceled {
		return shared.ErrInvalidState
	}
	s.Status = StatusCanceled
	return nil
}
