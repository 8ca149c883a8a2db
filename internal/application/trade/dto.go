package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/trade"
)

// CreateOrderRequest is a customer's purchase of a listing
type CreateOrderRequest struct {
	ListingID uuid.UUID       `json:"listing_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"`
}

// OrderResponse is the API-facing view of an order
type OrderResponse struct {
	ID         uuid.UUID         `json:"id"`
	VendorID   uuid.UUID         `json:"vendor_id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	ListingID  uuid.UUID         `json:"listing_id"`
	Quantity   int               `json:"quantity"`
	Amount     decimal.Decimal   `json:"amount"`
	IsPaid     bool              `json:"is_paid"`
	Status     trade.OrderStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		VendorID:   o.VendorID,
		CustomerID: o.CustomerID,
		ListingID:  o.ListingID,
		Quantity:   o.Quantity,
		Amount:     o.Amount,
		IsPaid:     o.IsPaid,
		Status:     o.Status,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// CreateReviewRequest is a customer's rating of a listing
type CreateReviewRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// ReviewResponse is the API-facing view of a review
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToReviewResponse converts a domain review to its response form
func ToReviewResponse(r *trade.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ListingID:  r.ListingID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Hidden:     r.Hidden,
		CreatedAt:  r.CreatedAt,
	}
}

// PaymentResponse is the API-facing view of a payment
type PaymentResponse struct {
	ID         uuid.UUID           `json:"id"`
	OrderID    uuid.UUID           `json:"order_id"`
	Amount     decimal.Decimal     `json:"amount"`
	GatewayRef string              `json:"gateway_ref,omitempty"`
	Status     trade.PaymentStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to its response form
func ToPaymentResponse(p *trade.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		GatewayRef: p.GatewayRef,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}
