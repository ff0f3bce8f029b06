package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GORM-based partner repository.
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Create creates a new partner.
func (r *GormPartnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	l := log.Ctx(ctx)

	partner.ID = uuid.New().String()
	if partner.Status == "" {
		partner.Status = domain.PartnerStatusPending
	}

	model := domain.PartnerToModel(partner)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePhone
		}
		l.Error().Err(result.Error).Msg("failed to create partner in db")
		return result.Error
	}

	partner.CreatedAt = model.CreatedAt
	partner.UpdatedAt = model.UpdatedAt
	l.Debug().Str(log.FieldPartnerID, partner.ID).Msg("partner created in db")
	return nil
}

// GetByID retrieves a partner by ID.
func (r *GormPartnerRepository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	l := log.Ctx(ctx)

	var model domain.PartnerModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldPartnerID, id).Msg("failed to get partner by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByPhone retrieves a partner by phone number.
func (r *GormPartnerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Partner, error) {
	l := log.Ctx(ctx)

	var model domain.PartnerModel
	result := r.db.WithContext(ctx).First(&model, "phone = ?", phone)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		l.Error().Err(result.Error).Msg("failed to get partner by phone")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update saves the full partner state.
func (r *GormPartnerRepository) Update(ctx context.Context, partner *domain.Partner) error {
	l := log.Ctx(ctx)

	model := domain.PartnerToModel(partner)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldPartnerID, partner.ID).Msg("failed to update partner in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPartnerNotFound
	}
	partner.UpdatedAt = model.UpdatedAt
	return nil
}

// List retrieves partners with pagination, optionally filtered by status.
func (r *GormPartnerRepository) List(ctx context.Context, status string, page, pageSize int) ([]domain.Partner, int, error) {
	l := log.Ctx(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.PartnerModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		l.Error().Err(err).Msg("failed to count partners")
		return nil, 0, err
	}

	var models []domain.PartnerModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&models).Error; err != nil {
		l.Error().Err(err).Msg("failed to list partners from db")
		return nil, 0, err
	}

	partners := make([]domain.Partner, len(models))
	for i, model := range models {
		partners[i] = *model.ToDomain()
	}
	return partners, int(total), nil
}
