package service

import (
	"context"
	"time"

	"github.com/Harshkesharwani789/wave-backend/internal/audit"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/events"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

type bookingService struct {
	bookings repository.BookingRepository
	catalog  repository.CatalogRepository
	partners repository.PartnerRepository
	producer events.Producer
}

func NewBookingService(
	bookings repository.BookingRepository,
	catalog repository.CatalogRepository,
	partners repository.PartnerRepository,
	producer events.Producer,
) BookingService {
	return &bookingService{
		bookings: bookings,
		catalog:  catalog,
		partners: partners,
		producer: producer,
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	err := s.producer.ProduceBookingEvent(ctx, &events.BookingEvent{
		EventType: eventType,
		BookingID: b.ID,
		UserID:    b.UserID,
		PartnerID: b.PartnerID,
		Status:    string(b.Status),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldBookingID, b.ID).Msg("failed to publish booking event")
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if !domain.ValidPaymentModes[req.PaymentMode] {
		return nil, ErrInvalidPaymentMode
	}

	sub, err := s.catalog.GetSubService(ctx, req.SubServiceID)
	if err != nil {
		return nil, err
	}

	svc, err := s.catalog.GetService(ctx, sub.ServiceID)
	if err != nil {
		return nil, err
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		// Accept a bare date too.
		scheduledDate, err = time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return nil, err
		}
	}

	booking := &domain.Booking{
		UserID:        userID,
		SubServiceID:  sub.ID,
		ServiceID:     sub.ServiceID,
		CategoryID:    svc.CategoryID,
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Location:      req.Location,
		Amount:        sub.Price,
		PaymentMode:   req.PaymentMode,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookingCreated, booking)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Accept assigns the booking to an approved partner and opens it for
// chat. Only pending bookings can be accepted.
func (s *bookingService) Accept(ctx context.Context, bookingID, partnerID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrBookingNotPending
	}

	partner, err := s.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.Status != domain.PartnerStatusApproved {
		return nil, ErrPartnerNotApproved
	}

	now := time.Now().UTC()
	booking.PartnerID = partnerID
	booking.Status = domain.BookingStatusAccepted
	booking.AcceptedAt = &now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionBookingAccept, partnerID, bookingID, "booking accepted")
	s.publish(ctx, events.EventBookingAccepted, booking)
	return booking, nil
}

// Reject declines a pending booking on behalf of a partner.
func (s *bookingService) Reject(ctx context.Context, bookingID, partnerID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrBookingNotPending
	}

	booking.Status = domain.BookingStatusRejected
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookingRejected, booking)
	return booking, nil
}

// Complete marks an accepted or in-progress booking finished. Chat
// eligibility ends here: completed bookings are no longer accepted.
func (s *bookingService) Complete(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCompleted || booking.Status == domain.BookingStatusCancelled {
		return nil, ErrBookingAlreadyClosed
	}

	now := time.Now().UTC()
	booking.Status = domain.BookingStatusCompleted
	booking.CompletedAt = &now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookingCompleted, booking)
	return booking, nil
}

// Cancel cancels the caller's own booking.
func (s *bookingService) Cancel(ctx context.Context, bookingID, userID string, req *domain.CancelBookingRequest) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status == domain.BookingStatusCompleted || booking.Status == domain.BookingStatusCancelled {
		return nil, ErrBookingAlreadyClosed
	}

	now := time.Now().UTC()
	booking.Status = domain.BookingStatusCancelled
	booking.CancellationReason = req.Reason
	booking.CancellationTime = &now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionBookingCancel, userID, bookingID, "booking cancelled")
	s.publish(ctx, events.EventBookingCancelled, booking)
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string, status string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, status)
}

func (s *bookingService) ListPartnerBookings(ctx context.Context, partnerID string, status string) ([]domain.Booking, error) {
	return s.bookings.ListByPartner(ctx, partnerID, status)
}
