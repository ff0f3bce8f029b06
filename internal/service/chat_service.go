package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Harshkesharwani789/wave-backend/internal/audit"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/hub"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

type chatService struct {
	hub      *hub.Hub
	bookings repository.BookingRepository
	chats    repository.ChatRepository
}

func NewChatService(h *hub.Hub, bookings repository.BookingRepository, chats repository.ChatRepository) ChatService {
	return &chatService{
		hub:      h,
		bookings: bookings,
		chats:    chats,
	}
}

// checkEligibility loads the booking and verifies chat is open for it.
// Missing bookings and non-accepted bookings are distinct errors here;
// the handler collapses both to the same client-facing message.
func (s *chatService) checkEligibility(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingMissing
		}
		return nil, err
	}
	if booking.Status != domain.BookingStatusAccepted {
		return nil, ErrChatNotAvailable
	}
	return booking, nil
}

func (s *chatService) HandleJoinChat(ctx context.Context, c *hub.Client, bookingID, userID string) error {
	l := log.Ctx(ctx)

	if _, err := s.checkEligibility(ctx, bookingID); err != nil {
		audit.LogWithTarget(ctx, audit.ActionChatDenied, userID, bookingID, "chat join denied")
		return err
	}

	c.UserID = userID
	s.hub.JoinRoom(c, bookingID)

	audit.LogWithTarget(ctx, audit.ActionChatJoin, userID, bookingID, "joined booking chat")
	l.Debug().Str(log.FieldBookingID, bookingID).Str(log.FieldUserID, userID).Msg("chat join ok")
	return nil
}

func (s *chatService) HandleSendMessage(ctx context.Context, c *hub.Client, ev *domain.SendMessageEvent) error {
	l := log.Ctx(ctx)

	if strings.TrimSpace(ev.Message) == "" {
		return ErrEmptyMessage
	}

	if _, err := s.checkEligibility(ctx, ev.BookingID); err != nil {
		audit.LogWithTarget(ctx, audit.ActionChatDenied, ev.SenderID, ev.BookingID, "chat send denied")
		return err
	}

	if !s.hub.IsMember(c.ID, ev.BookingID) {
		return ErrNotInChatRoom
	}

	msg := domain.ChatMessage{
		SenderID:   ev.SenderID,
		ReceiverID: ev.ReceiverID,
		Text:       ev.Message,
		Timestamp:  time.Now().UTC(),
	}

	history, err := s.chats.AppendMessage(ctx, ev.BookingID, msg)
	if err != nil {
		return err
	}

	if err := s.hub.BroadcastToRoom(ev.BookingID, domain.NewReceiveMessageEvent(ev.BookingID, history)); err != nil {
		l.Error().Err(err).Str(log.FieldBookingID, ev.BookingID).Msg("failed to broadcast chat history")
		return err
	}

	audit.LogWithTarget(ctx, audit.ActionChatSend, ev.SenderID, ev.BookingID, "chat message sent")
	return nil
}

func (s *chatService) HandleGetMessages(ctx context.Context, c *hub.Client, bookingID string) error {
	if _, err := s.checkEligibility(ctx, bookingID); err != nil {
		return err
	}

	if !s.hub.IsMember(c.ID, bookingID) {
		return ErrNotInChatRoom
	}

	history, err := s.chats.GetHistory(ctx, bookingID)
	if err != nil {
		return err
	}

	return c.SendJSON(domain.NewReceiveMessageEvent(bookingID, history))
}

func (s *chatService) HandleDisconnect(ctx context.Context, c *hub.Client) {
	audit.Log(ctx, audit.ActionChatDisconnect, c.UserID, "chat client disconnected")
	s.hub.Unregister(c)
}
