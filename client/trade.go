package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeGateway covers orders, payments and reviews.
type TradeGateway struct {
	c *Client
}

// CreateOrderRequest places an order for a listing. Amount must equal the
// listing price times the quantity.
type CreateOrderRequest struct {
	ListingID uuid.UUID       `json:"listing_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateOrder places an order as the signed-in customer.
func (g *TradeGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := g.c.do(ctx, http.MethodPost, "/orders", req, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders returns the customer's own orders.
func (g *TradeGateway) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := g.c.do(ctx, http.MethodGet, "/orders/mine", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ReceivedOrders returns the orders placed against the vendor's listings.
func (g *TradeGateway) ReceivedOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := g.c.do(ctx, http.MethodGet, "/orders/received", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order by ID.
func (g *TradeGateway) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	if err := g.c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// TransitionOrder moves an order to the next fulfilment status. Vendor only.
func (g *TradeGateway) TransitionOrder(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	body := map[string]string{"status": status}
	var order Order
	if err := g.c.do(ctx, http.MethodPut, "/orders/"+id.String()+"/status", body, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels the customer's own order before it ships.
func (g *TradeGateway) CancelOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	if err := g.c.do(ctx, http.MethodPost, "/orders/"+id.String()+"/cancel", nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InitiatePayment creates a pending payment for the order's full amount.
func (g *TradeGateway) InitiatePayment(ctx context.Context, orderID uuid.UUID, gatewayRef string) (*Payment, error) {
	body := map[string]string{"order_id": orderID.String(), "gateway_ref": gatewayRef}
	var payment Payment
	if err := g.c.do(ctx, http.MethodPost, "/payments", body, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SettlePayment marks a payment settled and the order paid.
func (g *TradeGateway) SettlePayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	if err := g.c.do(ctx, http.MethodPost, "/payments/"+id.String()+"/settle", nil, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// OrderPayments returns the payments recorded against an order.
func (g *TradeGateway) OrderPayments(ctx context.Context, orderID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	if err := g.c.do(ctx, http.MethodGet, "/orders/"+orderID.String()+"/payments", nil, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreateReview reviews a listing the customer has a completed order for.
func (g *TradeGateway) CreateReview(ctx context.Context, listingID uuid.UUID, rating int, comment string) (*Review, error) {
	body := map[string]interface{}{"listing_id": listingID, "rating": rating, "comment": comment}
	var review Review
	if err := g.c.do(ctx, http.MethodPost, "/reviews", body, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ListingReviews returns the visible reviews of a listing.
func (g *TradeGateway) ListingReviews(ctx context.Context, listingID uuid.UUID) ([]Review, error) {
	var reviews []Review
	if err := g.c.do(ctx, http.MethodGet, "/marketplace/listings/"+listingID.String()+"/reviews", nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// HideReview hides a review from public views. Admin only.
func (g *TradeGateway) HideReview(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	if err := g.c.do(ctx, http.MethodPost, "/admin/reviews/"+id.String()+"/hide", nil, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ShowReview restores a hidden review. Admin only.
func (g *TradeGateway) ShowReview(ctx context.Context, id uuid.UUID) (*Review, error) {
	var review Review
	if err := g.c.do(ctx, http.MethodPost, "/admin/reviews/"+id.String()+"/show", nil, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
