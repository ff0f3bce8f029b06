package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
)

// fakeReviewRepo stores reviews in memory with one-per-booking semantics.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*domain.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.BookingID == review.BookingID {
			return repository.ErrDuplicateReview
		}
	}
	r.nextID++
	review.ID = "rev-" + string(rune('0'+r.nextID))
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.BookingID == bookingID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, repository.ErrReviewNotFound
}

func (r *fakeReviewRepo) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return repository.ErrReviewNotFound
	}
	review.Status = status
	return nil
}

func (r *fakeReviewRepo) ListByPartner(ctx context.Context, partnerID string, approvedOnly bool) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, review := range r.reviews {
		if review.PartnerID != partnerID {
			continue
		}
		if approvedOnly && review.Status != domain.ReviewStatusApproved {
			continue
		}
		out = append(out, *review)
	}
	return out, nil
}

func (r *fakeReviewRepo) ListPending(ctx context.Context) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, review := range r.reviews {
		if review.Status == domain.ReviewStatusPending {
			out = append(out, *review)
		}
	}
	return out, nil
}

func completedBooking(id, userID, partnerID string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		PartnerID: partnerID,
		Status:    domain.BookingStatusCompleted,
	}
}

func TestCreateReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking("b1", "u1", "p1"))
	svc := NewReviewService(reviews, bookings)

	review, err := svc.Create(context.Background(), "u1", &domain.CreateReviewRequest{
		BookingID: "b1",
		Rating:    5,
		Comment:   "excellent work, on time",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusPending, review.Status)
	assert.Equal(t, "p1", review.PartnerID)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(acceptedBooking("b1", "u1", "p1"))
	svc := NewReviewService(reviews, bookings)

	_, err := svc.Create(context.Background(), "u1", &domain.CreateReviewRequest{
		BookingID: "b1",
		Rating:    4,
		Comment:   "pretty good overall",
	})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)
}

func TestCreateReviewRequiresOwnership(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), newFakeBookingRepo(completedBooking("b1", "u1", "p1")))

	_, err := svc.Create(context.Background(), "someone-else", &domain.CreateReviewRequest{
		BookingID: "b1",
		Rating:    1,
		Comment:   "never used this service",
	})
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestCreateReviewOncePerBooking(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking("b1", "u1", "p1"))
	svc := NewReviewService(reviews, bookings)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", &domain.CreateReviewRequest{BookingID: "b1", Rating: 5, Comment: "great service"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", &domain.CreateReviewRequest{BookingID: "b1", Rating: 1, Comment: "changed my mind"})
	assert.ErrorIs(t, err, repository.ErrDuplicateReview)
}

func TestModerateReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking("b1", "u1", "p1"))
	svc := NewReviewService(reviews, bookings)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", &domain.CreateReviewRequest{BookingID: "b1", Rating: 5, Comment: "great service"})
	require.NoError(t, err)

	moderated, err := svc.Moderate(ctx, "admin1", created.ID, &domain.ModerateReviewRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusApproved, moderated.Status)

	// Approved reviews are publicly listed.
	listed, err := svc.ListByPartner(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Nothing left pending.
	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestModerateReviewReject(t *testing.T) {
	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo(completedBooking("b1", "u1", "p1"))
	svc := NewReviewService(reviews, bookings)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", &domain.CreateReviewRequest{BookingID: "b1", Rating: 1, Comment: "rude and late"})
	require.NoError(t, err)

	moderated, err := svc.Moderate(ctx, "admin1", created.ID, &domain.ModerateReviewRequest{Approve: false})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusRejected, moderated.Status)

	listed, err := svc.ListByPartner(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
