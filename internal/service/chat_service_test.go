package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/hub"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
)

// fakeBookingRepo serves bookings from a map.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[string]*domain.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return repository.ErrBookingNotFound
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string, status string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && (status == "" || string(b.Status) == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByPartner(ctx context.Context, partnerID string, status string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.PartnerID == partnerID && (status == "" || string(b.Status) == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeChatRepo stores messages per booking in memory, appending under a
// lock the way the real repository appends inside a transaction.
type fakeChatRepo struct {
	mu       sync.Mutex
	sessions map[string][]domain.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: make(map[string][]domain.ChatMessage)}
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, bookingID string, msg domain.ChatMessage) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[bookingID] = append(r.sessions[bookingID], msg)
	out := make([]domain.ChatMessage, len(r.sessions[bookingID]))
	copy(out, r.sessions[bookingID])
	return out, nil
}

func (r *fakeChatRepo) GetHistory(ctx context.Context, bookingID string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ChatMessage, len(r.sessions[bookingID]))
	copy(out, r.sessions[bookingID])
	return out, nil
}

func (r *fakeChatRepo) GetSession(ctx context.Context, bookingID string) (*domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs, ok := r.sessions[bookingID]
	if !ok {
		return nil, repository.ErrChatSessionNotFound
	}
	return &domain.ChatSession{BookingID: bookingID, Messages: msgs}, nil
}

func wsConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}
}

func newChatFixture(t *testing.T, bookings ...*domain.Booking) (ChatService, *hub.Hub, *fakeChatRepo) {
	t.Helper()
	h := hub.NewHub(wsConfig())
	go h.Run()
	chats := newFakeChatRepo()
	svc := NewChatService(h, newFakeBookingRepo(bookings...), chats)
	return svc, h, chats
}

func testClient(id string) *hub.Client {
	return &hub.Client{ID: id, Send: make(chan []byte, 16)}
}

func acceptedBooking(id, userID, partnerID string) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		PartnerID: partnerID,
		Status:    domain.BookingStatusAccepted,
	}
}

func receiveEvent(t *testing.T, c *hub.Client) domain.ReceiveMessageEvent {
	t.Helper()
	select {
	case data := <-c.Send:
		var ev domain.ReceiveMessageEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return domain.ReceiveMessageEvent{}
	}
}

func TestJoinChatAccepted(t *testing.T) {
	svc, h, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(context.Background(), c, "b1", "u1"))
	assert.True(t, h.IsMember("c1", "b1"))
	assert.Equal(t, "u1", c.UserID)
}

func TestJoinChatIdempotent(t *testing.T) {
	svc, h, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(context.Background(), c, "b1", "u1"))
	require.NoError(t, svc.HandleJoinChat(context.Background(), c, "b1", "u1"))
	assert.Equal(t, 1, h.RoomSize("b1"))
}

func TestJoinChatNonAcceptedStatuses(t *testing.T) {
	statuses := []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusConfirmed,
		domain.BookingStatusInProgress,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
		domain.BookingStatusRejected,
		domain.BookingStatusPaused,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			booking := acceptedBooking("b1", "u1", "p1")
			booking.Status = status
			svc, h, _ := newChatFixture(t, booking)

			c := testClient("c1")
			err := svc.HandleJoinChat(context.Background(), c, "b1", "u1")
			assert.ErrorIs(t, err, ErrChatNotAvailable)
			assert.False(t, h.IsMember("c1", "b1"))
		})
	}
}

func TestJoinChatMissingBooking(t *testing.T) {
	svc, h, _ := newChatFixture(t)

	c := testClient("c1")
	err := svc.HandleJoinChat(context.Background(), c, "nope", "u1")
	assert.ErrorIs(t, err, ErrBookingMissing)
	assert.False(t, h.IsMember("c1", "nope"))
}

// wrappingBookingRepo wraps every lookup error the way a repository
// adding context to its failures would.
type wrappingBookingRepo struct {
	*fakeBookingRepo
}

func (r *wrappingBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := r.fakeBookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking lookup %q: %w", id, err)
	}
	return b, nil
}

func TestJoinChatWrappedNotFoundError(t *testing.T) {
	h := hub.NewHub(wsConfig())
	go h.Run()
	bookings := &wrappingBookingRepo{fakeBookingRepo: newFakeBookingRepo()}
	svc := NewChatService(h, bookings, newFakeChatRepo())

	c := testClient("c1")
	err := svc.HandleJoinChat(context.Background(), c, "nope", "u1")
	assert.ErrorIs(t, err, ErrBookingMissing)
	assert.False(t, h.IsMember("c1", "nope"))
}

func TestSendMessageRequiresJoin(t *testing.T) {
	svc, _, chats := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))

	c := testClient("c1")
	err := svc.HandleSendMessage(context.Background(), c, &domain.SendMessageEvent{
		BookingID:  "b1",
		SenderID:   "u1",
		ReceiverID: "p1",
		Message:    "hello",
	})
	assert.ErrorIs(t, err, ErrNotInChatRoom)

	history, _ := chats.GetHistory(context.Background(), "b1")
	assert.Empty(t, history)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	svc, _, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(context.Background(), c, "b1", "u1"))

	err := svc.HandleSendMessage(context.Background(), c, &domain.SendMessageEvent{
		BookingID: "b1",
		SenderID:  "u1",
		Message:   "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessageNonAcceptedBooking(t *testing.T) {
	booking := acceptedBooking("b1", "u1", "p1")
	bookings := newFakeBookingRepo(booking)
	h := hub.NewHub(wsConfig())
	go h.Run()
	chats := newFakeChatRepo()
	svc := NewChatService(h, bookings, chats)
	ctx := context.Background()

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(ctx, c, "b1", "u1"))

	// Booking leaves accepted after the room was joined; sends stop.
	require.NoError(t, bookings.UpdateStatus(ctx, "b1", domain.BookingStatusCompleted))

	err := svc.HandleSendMessage(ctx, c, &domain.SendMessageEvent{
		BookingID: "b1",
		SenderID:  "u1",
		Message:   "hello",
	})
	assert.ErrorIs(t, err, ErrChatNotAvailable)

	history, _ := chats.GetHistory(ctx, "b1")
	assert.Empty(t, history)
}

func TestSendMessageBroadcastsFullHistory(t *testing.T) {
	svc, _, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))
	ctx := context.Background()

	user := testClient("user")
	partner := testClient("partner")
	require.NoError(t, svc.HandleJoinChat(ctx, user, "b1", "u1"))
	require.NoError(t, svc.HandleJoinChat(ctx, partner, "b1", "p1"))

	require.NoError(t, svc.HandleSendMessage(ctx, user, &domain.SendMessageEvent{
		BookingID:  "b1",
		SenderID:   "u1",
		ReceiverID: "p1",
		Message:    "hello",
	}))

	for _, c := range []*hub.Client{user, partner} {
		ev := receiveEvent(t, c)
		assert.Equal(t, domain.EventReceiveMessage, ev.Type)
		assert.Equal(t, "b1", ev.BookingID)
		require.Len(t, ev.Messages, 1)
		assert.Equal(t, "hello", ev.Messages[0].Text)
		assert.Equal(t, "u1", ev.Messages[0].SenderID)
	}

	require.NoError(t, svc.HandleSendMessage(ctx, partner, &domain.SendMessageEvent{
		BookingID:  "b1",
		SenderID:   "p1",
		ReceiverID: "u1",
		Message:    "hi",
	}))

	for _, c := range []*hub.Client{user, partner} {
		ev := receiveEvent(t, c)
		require.Len(t, ev.Messages, 2)
		assert.Equal(t, "hello", ev.Messages[0].Text)
		assert.Equal(t, "hi", ev.Messages[1].Text)
	}
}

func TestGetMessagesEmptyHistory(t *testing.T) {
	svc, _, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))
	ctx := context.Background()

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(ctx, c, "b1", "u1"))
	require.NoError(t, svc.HandleGetMessages(ctx, c, "b1"))

	ev := receiveEvent(t, c)
	assert.Equal(t, domain.EventReceiveMessage, ev.Type)
	assert.NotNil(t, ev.Messages)
	assert.Empty(t, ev.Messages)
}

func TestGetMessagesRequiresJoin(t *testing.T) {
	svc, _, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))

	c := testClient("c1")
	err := svc.HandleGetMessages(context.Background(), c, "b1")
	assert.ErrorIs(t, err, ErrNotInChatRoom)
}

func TestGetMessagesReturnsSentMessages(t *testing.T) {
	svc, _, _ := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))
	ctx := context.Background()

	c := testClient("c1")
	require.NoError(t, svc.HandleJoinChat(ctx, c, "b1", "u1"))
	require.NoError(t, svc.HandleSendMessage(ctx, c, &domain.SendMessageEvent{
		BookingID:  "b1",
		SenderID:   "u1",
		ReceiverID: "p1",
		Message:    "anyone there?",
	}))
	receiveEvent(t, c) // drain the broadcast

	require.NoError(t, svc.HandleGetMessages(ctx, c, "b1"))
	ev := receiveEvent(t, c)
	require.Len(t, ev.Messages, 1)
	assert.Equal(t, "anyone there?", ev.Messages[0].Text)
}

func TestConcurrentSendsBothSurvive(t *testing.T) {
	svc, _, chats := newChatFixture(t, acceptedBooking("b1", "u1", "p1"))
	ctx := context.Background()

	user := testClient("user")
	partner := testClient("partner")
	require.NoError(t, svc.HandleJoinChat(ctx, user, "b1", "u1"))
	require.NoError(t, svc.HandleJoinChat(ctx, partner, "b1", "p1"))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.HandleSendMessage(ctx, user, &domain.SendMessageEvent{
			BookingID: "b1", SenderID: "u1", ReceiverID: "p1", Message: "from user",
		})
	}()
	go func() {
		defer wg.Done()
		svc.HandleSendMessage(ctx, partner, &domain.SendMessageEvent{
			BookingID: "b1", SenderID: "p1", ReceiverID: "u1", Message: "from partner",
		})
	}()
	wg.Wait()

	history, err := chats.GetHistory(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	texts := []string{history[0].Text, history[1].Text}
	assert.Contains(t, texts, "from user")
	assert.Contains(t, texts, "from partner")
}
