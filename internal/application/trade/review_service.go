package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/domain/trade"
)

// ReviewService handles customer reviews and their admin moderation
type ReviewService struct {
	reviewRepo trade.ReviewRepository
	orderRepo  trade.OrderRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo trade.ReviewRepository, orderRepo trade.OrderRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, orderRepo: orderRepo}
}

// Create records a review. The customer must have a completed order for the
// listing being reviewed.
func (s *ReviewService) Create(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	purchased := false
	for _, o := range orders {
		if o.ListingID == req.ListingID && o.Status == trade.OrderStatusCompleted {
			purchased = true
			break
		}
	}
	if !purchased {
		return nil, shared.NewDomainError("NOT_PURCHASED", "Only completed purchases can be reviewed")
	}

	review, err := trade.NewReview(req.ListingID, customerID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListByListing returns the visible reviews of a listing
func (s *ReviewService) ListByListing(ctx context.Context, listingID uuid.UUID, filter shared.Filter) ([]ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByListing(ctx, listingID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		if reviews[i].Hidden {
			continue
		}
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// Hide hides a review from public display. Admin action.
func (s *ReviewService) Hide(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, func(r *trade.Review) { r.Hide() })
}

// Show restores a hidden review. Admin action.
func (s *ReviewService) Show(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, func(r *trade.Review) { r.Show() })
}

func (s *ReviewService) moderate(ctx context.Context, id uuid.UUID, action func(r *trade.Review)) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	action(review)
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}
