package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markethub/backend/internal/domain/listing"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/domain/trade"
	"github.com/markethub/backend/internal/infrastructure/telemetry"
)

// OrderService handles order placement and fulfilment transitions
type OrderService struct {
	orderRepo       trade.OrderRepository
	listingRepo     listing.Repository
	businessMetrics *telemetry.BusinessMetrics
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, listingRepo listing.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo, listingRepo: listingRepo}
}

// SetBusinessMetrics sets the business metrics collector
func (s *OrderService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create places an order against a published listing. The order is pinned to
// the listing's vendor; the submitted amount must cover quantity times the
// listing price.
func (s *OrderService) Create(ctx context.Context, customerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	l, err := s.listingRepo.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != listing.StatusActive {
		return nil, shared.NewDomainError("LISTING_UNAVAILABLE", "Listing is not available for purchase")
	}

	expected := l.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if !req.Amount.Equal(expected) {
		return nil, shared.NewDomainError("AMOUNT_MISMATCH", "Order amount does not match the listing price")
	}

	order, err := trade.NewOrder(l.VendorID, customerID, l.ID, req.Quantity, req.Amount)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordOrderWithAmount(ctx, l.VendorID, l.EntryID, req.Amount)
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns an order visible to the requesting party
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListByVendor returns a vendor's orders
func (s *OrderService) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByVendor(ctx, vendorID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// ListByCustomer returns a customer's orders
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// Transition moves a vendor's order along the fulfilment path
func (s *OrderService) Transition(ctx context.Context, vendorID, id uuid.UUID, status trade.OrderStatus) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, shared.ErrForbidden
	}
	if err := order.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel cancels a customer's own pending or processing order
func (s *OrderService) Cancel(ctx context.Context, customerID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, shared.ErrForbidden
	}
	if err := order.TransitionTo(trade.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func toOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
