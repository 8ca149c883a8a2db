package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSettled  PaymentStatus = "settled"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment records a gateway settlement attempt against an order
type Payment struct {
	shared.BaseAggregateRoot
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GatewayRef string          `gorm:"type:varchar(200);index"` // Reference assigned by the payment gateway
	Status     PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, amount decimal.Decimal, gatewayRef string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Amount:            amount,
		GatewayRef:        strings.TrimSpace(gatewayRef),
		Status:            PaymentStatusPending,
	}, nil
}

// Settle marks the payment as successfully captured
func (p *Payment) Settle() error {
	if p.Status != PaymentStatusPending {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusSettled
	return nil
}

// Fail marks the payment as failed
func (p *Payment) Fail() error {
	if p.Status != PaymentStatusPending {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusFailed
	return nil
}

// Refund marks a settled payment as refunded
func (p *Payment) Refund() error {
	if p.Status != PaymentStatusSettled {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusRefunded
	return nil
}
