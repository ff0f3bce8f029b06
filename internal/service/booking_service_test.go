package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/events"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
)

// recordingProducer captures published booking events.
type recordingProducer struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingProducer) ProduceBookingEvent(ctx context.Context, event *events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

// fakePartnerRepo serves partners from a map.
type fakePartnerRepo struct {
	mu       sync.Mutex
	partners map[string]*domain.Partner
	byPhone  map[string]string
	nextID   int
}

func newFakePartnerRepo(partners ...*domain.Partner) *fakePartnerRepo {
	r := &fakePartnerRepo{
		partners: make(map[string]*domain.Partner),
		byPhone:  make(map[string]string),
	}
	for _, p := range partners {
		r.partners[p.ID] = p
		r.byPhone[p.Phone] = p.ID
	}
	return r
}

func (r *fakePartnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[p.Phone]; ok {
		return repository.ErrDuplicatePhone
	}
	r.nextID++
	if p.ID == "" {
		p.ID = "partner-" + string(rune('0'+r.nextID))
	}
	copied := *p
	r.partners[p.ID] = &copied
	r.byPhone[p.Phone] = p.ID
	return nil
}

func (r *fakePartnerRepo) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partners[id]
	if !ok {
		return nil, repository.ErrPartnerNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePartnerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPhone[phone]
	if !ok {
		return nil, repository.ErrPartnerNotFound
	}
	copied := *r.partners[id]
	return &copied, nil
}

func (r *fakePartnerRepo) Update(ctx context.Context, p *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.partners[p.ID]; !ok {
		return repository.ErrPartnerNotFound
	}
	copied := *p
	r.partners[p.ID] = &copied
	return nil
}

func (r *fakePartnerRepo) List(ctx context.Context, status string, page, pageSize int) ([]domain.Partner, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Partner
	for _, p := range r.partners {
		if status == "" || string(p.Status) == status {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

// fakeCatalogRepo serves a fixed sub-service and service.
type fakeCatalogRepo struct {
	repository.CatalogRepository
	sub *domain.SubService
	svc *domain.Service
}

func (r *fakeCatalogRepo) GetSubService(ctx context.Context, id string) (*domain.SubService, error) {
	if r.sub == nil || r.sub.ID != id {
		return nil, repository.ErrSubServiceNotFound
	}
	return r.sub, nil
}

func (r *fakeCatalogRepo) GetService(ctx context.Context, id string) (*domain.Service, error) {
	if r.svc == nil || r.svc.ID != id {
		return nil, repository.ErrServiceNotFound
	}
	return r.svc, nil
}

func approvedPartner(id string) *domain.Partner {
	return &domain.Partner{
		ID:               id,
		Phone:            "9" + id,
		Status:           domain.PartnerStatusApproved,
		ProfileCompleted: true,
		KYC:              domain.KYCDetails{IsVerified: true},
	}
}

func newBookingFixture(bookings *fakeBookingRepo, partners *fakePartnerRepo) (BookingService, *recordingProducer) {
	producer := &recordingProducer{}
	catalog := &fakeCatalogRepo{
		sub: &domain.SubService{ID: "sub1", ServiceID: "svc1", Price: 499},
		svc: &domain.Service{ID: "svc1", CategoryID: "cat1"},
	}
	return NewBookingService(bookings, catalog, partners, producer), producer
}

func pendingBooking(id, userID string) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		UserID: userID,
		Status: domain.BookingStatusPending,
	}
}

func TestCreateBooking(t *testing.T) {
	bookings := newFakeBookingRepo()
	svc, producer := newBookingFixture(bookings, newFakePartnerRepo())

	booking, err := svc.Create(context.Background(), "u1", &domain.CreateBookingRequest{
		SubServiceID:  "sub1",
		ScheduledDate: "2026-09-01",
		ScheduledTime: "10:00",
		Location:      domain.Location{Address: "12 Hill Road"},
		PaymentMode:   "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, 499.0, booking.Amount)
	assert.Equal(t, "svc1", booking.ServiceID)
	assert.Equal(t, "cat1", booking.CategoryID)
	assert.Equal(t, []string{events.EventBookingCreated}, producer.types())
}

func TestCreateBookingInvalidPaymentMode(t *testing.T) {
	svc, _ := newBookingFixture(newFakeBookingRepo(), newFakePartnerRepo())

	_, err := svc.Create(context.Background(), "u1", &domain.CreateBookingRequest{
		SubServiceID:  "sub1",
		ScheduledDate: "2026-09-01",
		ScheduledTime: "10:00",
		PaymentMode:   "bitcoin",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMode)
}

func TestAcceptBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("b1", "u1"))
	partners := newFakePartnerRepo(approvedPartner("p1"))
	svc, producer := newBookingFixture(bookings, partners)

	booking, err := svc.Accept(context.Background(), "b1", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, booking.Status)
	assert.Equal(t, "p1", booking.PartnerID)
	assert.NotNil(t, booking.AcceptedAt)
	assert.Equal(t, []string{events.EventBookingAccepted}, producer.types())
}

func TestAcceptBookingNotPending(t *testing.T) {
	booking := pendingBooking("b1", "u1")
	booking.Status = domain.BookingStatusCancelled
	bookings := newFakeBookingRepo(booking)
	svc, _ := newBookingFixture(bookings, newFakePartnerRepo(approvedPartner("p1")))

	_, err := svc.Accept(context.Background(), "b1", "p1")
	assert.ErrorIs(t, err, ErrBookingNotPending)
}

func TestAcceptBookingUnapprovedPartner(t *testing.T) {
	partner := approvedPartner("p1")
	partner.Status = domain.PartnerStatusUnderReview
	bookings := newFakeBookingRepo(pendingBooking("b1", "u1"))
	svc, _ := newBookingFixture(bookings, newFakePartnerRepo(partner))

	_, err := svc.Accept(context.Background(), "b1", "p1")
	assert.ErrorIs(t, err, ErrPartnerNotApproved)

	// Booking untouched.
	got, _ := bookings.GetByID(context.Background(), "b1")
	assert.Equal(t, domain.BookingStatusPending, got.Status)
}

func TestCompleteBooking(t *testing.T) {
	booking := pendingBooking("b1", "u1")
	booking.Status = domain.BookingStatusAccepted
	bookings := newFakeBookingRepo(booking)
	svc, producer := newBookingFixture(bookings, newFakePartnerRepo())

	completed, err := svc.Complete(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Equal(t, []string{events.EventBookingCompleted}, producer.types())
}

func TestCompleteBookingAlreadyClosed(t *testing.T) {
	booking := pendingBooking("b1", "u1")
	booking.Status = domain.BookingStatusCompleted
	svc, _ := newBookingFixture(newFakeBookingRepo(booking), newFakePartnerRepo())

	_, err := svc.Complete(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrBookingAlreadyClosed)
}

func TestCancelBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("b1", "u1"))
	svc, producer := newBookingFixture(bookings, newFakePartnerRepo())

	booking, err := svc.Cancel(context.Background(), "b1", "u1", &domain.CancelBookingRequest{Reason: "changed plans"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	assert.Equal(t, "changed plans", booking.CancellationReason)
	assert.NotNil(t, booking.CancellationTime)
	assert.Equal(t, []string{events.EventBookingCancelled}, producer.types())
}

func TestCancelBookingNotOwner(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("b1", "u1"))
	svc, _ := newBookingFixture(bookings, newFakePartnerRepo())

	_, err := svc.Cancel(context.Background(), "b1", "intruder", &domain.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestRejectBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("b1", "u1"))
	svc, producer := newBookingFixture(bookings, newFakePartnerRepo(approvedPartner("p1")))

	booking, err := svc.Reject(context.Background(), "b1", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusRejected, booking.Status)
	assert.Equal(t, []string{events.EventBookingRejected}, producer.types())
}
