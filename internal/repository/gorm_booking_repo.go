package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormBookingRepository implements BookingRepository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM-based booking repository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create creates a new booking.
func (r *GormBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	l := log.Ctx(ctx)

	booking.ID = uuid.New().String()
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = domain.PaymentStatusPending
	}

	model := domain.BookingToModel(booking)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create booking in db")
		return result.Error
	}

	booking.CreatedAt = model.CreatedAt
	booking.UpdatedAt = model.UpdatedAt
	l.Debug().Str(log.FieldBookingID, booking.ID).Msg("booking created in db")
	return nil
}

// GetByID retrieves a booking by ID.
func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	l := log.Ctx(ctx)

	var model domain.BookingModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldBookingID, id).Msg("failed to get booking by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update saves the full booking state.
func (r *GormBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	l := log.Ctx(ctx)

	model := domain.BookingToModel(booking)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldBookingID, booking.ID).Msg("failed to update booking in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	booking.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateStatus transitions a booking to a new status.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.BookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldBookingID, id).Msg("failed to update booking status in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	l.Debug().Str(log.FieldBookingID, id).Str("status", string(status)).Msg("booking status updated in db")
	return nil
}

// ListByUser retrieves bookings for a user, optionally filtered by status.
func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string, status string) ([]domain.Booking, error) {
	l := log.Ctx(ctx)

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var models []domain.BookingModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to list user bookings from db")
		return nil, err
	}

	bookings := make([]domain.Booking, len(models))
	for i, model := range models {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// ListByPartner retrieves bookings assigned to a partner.
func (r *GormBookingRepository) ListByPartner(ctx context.Context, partnerID string, status string) ([]domain.Booking, error) {
	l := log.Ctx(ctx)

	query := r.db.WithContext(ctx).Where("partner_id = ?", partnerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var models []domain.BookingModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		l.Error().Err(err).Str(log.FieldPartnerID, partnerID).Msg("failed to list partner bookings from db")
		return nil, err
	}

	bookings := make([]domain.Booking, len(models))
	for i, model := range models {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}
