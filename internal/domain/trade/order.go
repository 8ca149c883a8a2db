package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions defines the allowed status transitions
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusCompleted},
}

// Order is a customer's purchase of a listing
type Order struct {
	shared.BaseAggregateRoot
	VendorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ListingID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null;default:1"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsPaid     bool            `gorm:"not null;default:false"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order
func NewOrder(vendorID, customerID, listingID uuid.UUID, quantity int, amount decimal.Decimal) (*Order, error) {
	if vendorID == uuid.Nil || customerID == uuid.Nil || listingID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount must be positive")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		CustomerID:        customerID,
		ListingID:         listingID,
		Quantity:          quantity,
		Amount:            amount,
		Status:            OrderStatusPending,
	}, nil
}

// TransitionTo moves the order to a new status if the transition is allowed
func (o *Order) TransitionTo(status OrderStatus) error {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == status {
			o.Status = status
			return nil
		}
	}
	return shared.ErrInvalidState
}

// MarkPaid flags the order as paid
func (o *Order) MarkPaid() {
	o.IsPaid = true
}
