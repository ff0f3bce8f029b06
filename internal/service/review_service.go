package service

import (
	"context"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
)

type reviewService struct {
	reviews  repository.ReviewRepository
	bookings repository.BookingRepository
}

func NewReviewService(reviews repository.ReviewRepository, bookings repository.BookingRepository) ReviewService {
	return &reviewService{
		reviews:  reviews,
		bookings: bookings,
	}
}

// Create records a review for the caller's completed booking. One review
// per booking.
func (s *reviewService) Create(ctx context.Context, userID string, req *domain.CreateReviewRequest) (*domain.Review, error) {
	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	review := &domain.Review{
		BookingID: booking.ID,
		UserID:    userID,
		PartnerID: booking.PartnerID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    domain.ReviewStatusPending,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Moderate applies the admin's verdict to a pending review.
func (s *reviewService) Moderate(ctx context.Context, adminID, reviewID string, req *domain.ModerateReviewRequest) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	status := domain.ReviewStatusRejected
	if req.Approve {
		status = domain.ReviewStatusApproved
	}

	if err := s.reviews.UpdateStatus(ctx, reviewID, status); err != nil {
		return nil, err
	}

	review.Status = status
	return review, nil
}

func (s *reviewService) ListByPartner(ctx context.Context, partnerID string) ([]domain.Review, error) {
	return s.reviews.ListByPartner(ctx, partnerID, true)
}

func (s *reviewService) ListPending(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListPending(ctx)
}
