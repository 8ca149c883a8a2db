package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/trade"
	"github.com/markethub/backend/internal/infrastructure/telemetry"
)

// PaymentService records gateway settlement attempts and keeps the paid flag
// on the order in step with them.
type PaymentService struct {
	paymentRepo     trade.PaymentRepository
	orderRepo       trade.OrderRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo trade.PaymentRepository, orderRepo trade.OrderRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo}
}

// SetBusinessMetrics sets the business metrics collector
func (s *PaymentService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Initiate creates a pending payment for the order's full amount
func (s *PaymentService) Initiate(ctx context.Context, orderID uuid.UUID, gatewayRef string) (*PaymentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payment, err := trade.NewPayment(order.ID, order.Amount, gatewayRef)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// Settle captures a pending payment and marks the order paid
func (s *PaymentService) Settle(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Settle(); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	order.MarkPaid()
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.recordOutcome(ctx, telemetry.PaymentOutcomeSettled)

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// Fail marks a pending payment as failed. The order stays unpaid.
func (s *PaymentService) Fail(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	resp, err := s.mutate(ctx, paymentID, (*trade.Payment).Fail)
	if err == nil {
		s.recordOutcome(ctx, telemetry.PaymentOutcomeFailed)
	}
	return resp, err
}

// Refund refunds a settled payment
func (s *PaymentService) Refund(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	resp, err := s.mutate(ctx, paymentID, (*trade.Payment).Refund)
	if err == nil {
		s.recordOutcome(ctx, telemetry.PaymentOutcomeRefunded)
	}
	return resp, err
}

// ListByOrder returns the payments recorded against an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

func (s *PaymentService) recordOutcome(ctx context.Context, outcome telemetry.PaymentOutcome) {
	if s.businessMetrics != nil {
		s.businessMetrics.RecordPayment(ctx, outcome)
	}
}

func (s *PaymentService) mutate(ctx context.Context, paymentID uuid.UUID, action func(p *trade.Payment) error) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := action(payment); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}
