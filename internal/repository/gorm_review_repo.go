package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM-based review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create creates a new review. The unique index on booking_id rejects a
// second review for the same booking.
func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	l := log.Ctx(ctx)

	review.ID = uuid.New().String()
	if review.Status == "" {
		review.Status = domain.ReviewStatusPending
	}

	model := domain.ReviewToModel(review)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReview
		}
		l.Error().Err(err).Msg("failed to create review in db")
		return err
	}
	review.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a review by ID.
func (r *GormReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var model domain.ReviewModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to get review by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByBooking retrieves the review for a booking.
func (r *GormReviewRepository) GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error) {
	var model domain.ReviewModel
	result := r.db.WithContext(ctx).First(&model, "booking_id = ?", bookingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Str(log.FieldBookingID, bookingID).Msg("failed to get review by booking")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdateStatus transitions a review's moderation state.
func (r *GormReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.ReviewModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to update review status in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ListByPartner retrieves reviews for a partner.
func (r *GormReviewRepository) ListByPartner(ctx context.Context, partnerID string, approvedOnly bool) ([]domain.Review, error) {
	query := r.db.WithContext(ctx).Where("partner_id = ?", partnerID)
	if approvedOnly {
		query = query.Where("status = ?", string(domain.ReviewStatusApproved))
	}

	var models []domain.ReviewModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldPartnerID, partnerID).Msg("failed to list partner reviews from db")
		return nil, err
	}
	return reviewsToDomain(models), nil
}

// ListPending retrieves reviews awaiting moderation.
func (r *GormReviewRepository) ListPending(ctx context.Context) ([]domain.Review, error) {
	var models []domain.ReviewModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ReviewStatusPending)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list pending reviews from db")
		return nil, err
	}
	return reviewsToDomain(models), nil
}

func reviewsToDomain(models []domain.ReviewModel) []domain.Review {
	out := make([]domain.Review, len(models))
	for i := range models {
		out[i] = *models[i].ToDomain()
	}
	return out
}
