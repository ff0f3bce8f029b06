package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormChatRepository implements ChatRepository using GORM. Messages are
// stored as individual rows keyed by session, so appending is a plain
// insert and never overwrites concurrent writes.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GORM-based chat repository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// AppendMessage persists one message for the booking's session, creating
// the session if it does not exist yet, and returns the full ordered
// history. Insert and read happen in one transaction.
func (r *GormChatRepository) AppendMessage(ctx context.Context, bookingID string, msg domain.ChatMessage) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	var history []domain.ChatMessage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := r.findOrCreateSession(tx, bookingID)
		if err != nil {
			return err
		}

		row := domain.ChatMessageModel{
			SessionID:  session.ID,
			SenderID:   msg.SenderID,
			ReceiverID: msg.ReceiverID,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		history, err = loadHistory(tx, session.ID)
		return err
	})
	if err != nil {
		l.Error().Err(err).Str(log.FieldBookingID, bookingID).Msg("failed to append chat message in db")
		return nil, err
	}

	l.Debug().Str(log.FieldBookingID, bookingID).Int("history_len", len(history)).Msg("chat message appended in db")
	return history, nil
}

// GetHistory returns the booking's full message history in send order.
// A booking without a session has an empty history, not an error.
func (r *GormChatRepository) GetHistory(ctx context.Context, bookingID string) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	var session domain.ChatSessionModel
	result := r.db.WithContext(ctx).First(&session, "booking_id = ?", bookingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []domain.ChatMessage{}, nil
		}
		l.Error().Err(result.Error).Str(log.FieldBookingID, bookingID).Msg("failed to get chat session from db")
		return nil, result.Error
	}

	history, err := loadHistory(r.db.WithContext(ctx), session.ID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldBookingID, bookingID).Msg("failed to load chat history from db")
		return nil, err
	}
	return history, nil
}

// GetSession retrieves the chat session for a booking, with messages.
func (r *GormChatRepository) GetSession(ctx context.Context, bookingID string) (*domain.ChatSession, error) {
	l := log.Ctx(ctx)

	var model domain.ChatSessionModel
	result := r.db.WithContext(ctx).First(&model, "booking_id = ?", bookingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChatSessionNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldBookingID, bookingID).Msg("failed to get chat session from db")
		return nil, result.Error
	}

	history, err := loadHistory(r.db.WithContext(ctx), model.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ChatSession{
		ID:        model.ID,
		BookingID: model.BookingID,
		Messages:  history,
		CreatedAt: model.CreatedAt,
	}, nil
}

// findOrCreateSession fetches the booking's session or creates one. The
// unique index on booking_id resolves the create race.
func (r *GormChatRepository) findOrCreateSession(tx *gorm.DB, bookingID string) (*domain.ChatSessionModel, error) {
	var session domain.ChatSessionModel
	err := tx.First(&session, "booking_id = ?", bookingID).Error
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return createSession(tx, bookingID)
}

// createSession inserts the session row with ON CONFLICT DO NOTHING. A
// plain insert losing the create race would abort the surrounding
// Postgres transaction; DO NOTHING keeps it live so the loser can read
// back the winner's row.
func createSession(tx *gorm.DB, bookingID string) (*domain.ChatSessionModel, error) {
	session := domain.ChatSessionModel{
		ID:        uuid.New().String(),
		BookingID: bookingID,
	}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "booking_id"}},
		DoNothing: true,
	}).Create(&session)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var existing domain.ChatSessionModel
		if err := tx.First(&existing, "booking_id = ?", bookingID).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return &session, nil
}

func loadHistory(tx *gorm.DB, sessionID string) ([]domain.ChatMessage, error) {
	var rows []domain.ChatMessageModel
	if err := tx.Where("session_id = ?", sessionID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	history := make([]domain.ChatMessage, len(rows))
	for i := range rows {
		history[i] = rows[i].ToDomain()
	}
	return history, nil
}
