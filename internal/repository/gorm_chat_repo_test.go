package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
)

func newChatTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ChatSessionModel{}, &domain.ChatMessageModel{}))
	return db
}

func chatMsg(sender, receiver, text string) domain.ChatMessage {
	return domain.ChatMessage{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
}

func TestAppendMessageCreatesSessionAndOrdersHistory(t *testing.T) {
	db := newChatTestDB(t)
	repo := NewGormChatRepository(db)
	ctx := context.Background()

	history, err := repo.AppendMessage(ctx, "b1", chatMsg("u1", "p1", "first"))
	require.NoError(t, err)
	require.Len(t, history, 1)

	history, err = repo.AppendMessage(ctx, "b1", chatMsg("p1", "u1", "second"))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Text)
	assert.Equal(t, "second", history[1].Text)

	var count int64
	require.NoError(t, db.Model(&domain.ChatSessionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateSessionLostRaceReturnsWinner(t *testing.T) {
	db := newChatTestDB(t)
	ctx := context.Background()

	winner := domain.ChatSessionModel{ID: "winner", BookingID: "b1"}
	require.NoError(t, db.Create(&winner).Error)

	// The loser's path: its initial lookup missed, the winner's row landed
	// in between, and the insert now conflicts. The conflict must not abort
	// the transaction; the append after it has to commit.
	var history []domain.ChatMessage
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := createSession(tx, "b1")
		if err != nil {
			return err
		}
		assert.Equal(t, "winner", session.ID)

		row := domain.ChatMessageModel{
			SessionID:  session.ID,
			SenderID:   "u1",
			ReceiverID: "p1",
			Text:       "late to the party",
			Timestamp:  time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		history, err = loadHistory(tx, session.ID)
		return err
	})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "late to the party", history[0].Text)

	var count int64
	require.NoError(t, db.Model(&domain.ChatSessionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetHistoryWithoutSessionIsEmpty(t *testing.T) {
	db := newChatTestDB(t)
	repo := NewGormChatRepository(db)

	history, err := repo.GetHistory(context.Background(), "never-chatted")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGetSessionReturnsMessages(t *testing.T) {
	db := newChatTestDB(t)
	repo := NewGormChatRepository(db)
	ctx := context.Background()

	_, err := repo.AppendMessage(ctx, "b1", chatMsg("u1", "p1", "hello"))
	require.NoError(t, err)

	session, err := repo.GetSession(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", session.BookingID)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "hello", session.Messages[0].Text)

	_, err = repo.GetSession(ctx, "b2")
	assert.ErrorIs(t, err, ErrChatSessionNotFound)
}
