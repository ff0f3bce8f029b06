package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormBannerRepository implements BannerRepository using GORM.
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GORM-based banner repository.
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// Create creates a new banner.
func (r *GormBannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	l := log.Ctx(ctx)

	banner.ID = uuid.New().String()
	banner.IsActive = true
	model := domain.BannerToModel(banner)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create banner in db")
		return err
	}
	banner.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a banner by ID.
func (r *GormBannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	var model domain.BannerModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to get banner by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update saves the full banner state.
func (r *GormBannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	result := r.db.WithContext(ctx).Save(domain.BannerToModel(banner))
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to update banner in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}

// Delete soft-deletes a banner.
func (r *GormBannerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.BannerModel{}, "id = ?", id)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to delete banner in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}

// List retrieves banners ordered for display.
func (r *GormBannerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	query := r.db.WithContext(ctx).Model(&domain.BannerModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []domain.BannerModel
	if err := query.Order("display_order ASC, created_at DESC").Find(&models).Error; err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list banners from db")
		return nil, err
	}

	banners := make([]domain.Banner, len(models))
	for i, model := range models {
		banners[i] = *model.ToDomain()
	}
	return banners, nil
}
