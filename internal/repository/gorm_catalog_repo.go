package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM-based catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// CreateCategory creates a new service category.
func (r *GormCatalogRepository) CreateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	l := log.Ctx(ctx)

	c.ID = uuid.New().String()
	c.IsActive = true
	model := domain.CategoryToModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create category in db")
		return err
	}
	c.CreatedAt = model.CreatedAt
	return nil
}

// GetCategory retrieves a category by ID.
func (r *GormCatalogRepository) GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	var model domain.ServiceCategoryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to get category by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdateCategory saves the full category state.
func (r *GormCatalogRepository) UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error {
	result := r.db.WithContext(ctx).Save(domain.CategoryToModel(c))
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to update category in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory soft-deletes a category.
func (r *GormCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.ServiceCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to delete category in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ListCategories retrieves all categories.
func (r *GormCatalogRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error) {
	query := r.db.WithContext(ctx).Model(&domain.ServiceCategoryModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []domain.ServiceCategoryModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list categories from db")
		return nil, err
	}

	categories := make([]domain.ServiceCategory, len(models))
	for i, model := range models {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// CreateService creates a new service under a category.
func (r *GormCatalogRepository) CreateService(ctx context.Context, s *domain.Service) error {
	l := log.Ctx(ctx)

	s.ID = uuid.New().String()
	s.IsActive = true
	model := domain.ServiceToModel(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create service in db")
		return err
	}
	s.CreatedAt = model.CreatedAt
	return nil
}

// GetService retrieves a service by ID.
func (r *GormCatalogRepository) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var model domain.ServiceModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to get service by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdateService saves the full service state.
func (r *GormCatalogRepository) UpdateService(ctx context.Context, s *domain.Service) error {
	result := r.db.WithContext(ctx).Save(domain.ServiceToModel(s))
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to update service in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// DeleteService soft-deletes a service.
func (r *GormCatalogRepository) DeleteService(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.ServiceModel{}, "id = ?", id)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to delete service in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// ListServicesByCategory retrieves services for a category.
func (r *GormCatalogRepository) ListServicesByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]domain.Service, error) {
	query := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []domain.ServiceModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list services from db")
		return nil, err
	}

	services := make([]domain.Service, len(models))
	for i, model := range models {
		services[i] = *model.ToDomain()
	}
	return services, nil
}

// CreateSubService creates a new bookable sub-service.
func (r *GormCatalogRepository) CreateSubService(ctx context.Context, s *domain.SubService) error {
	l := log.Ctx(ctx)

	s.ID = uuid.New().String()
	s.IsActive = true
	model := domain.SubServiceToModel(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create sub-service in db")
		return err
	}
	s.CreatedAt = model.CreatedAt
	return nil
}

// GetSubService retrieves a sub-service by ID.
func (r *GormCatalogRepository) GetSubService(ctx context.Context, id string) (*domain.SubService, error) {
	var model domain.SubServiceModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubServiceNotFound
		}
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to get sub-service by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdateSubService saves the full sub-service state.
func (r *GormCatalogRepository) UpdateSubService(ctx context.Context, s *domain.SubService) error {
	result := r.db.WithContext(ctx).Save(domain.SubServiceToModel(s))
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to update sub-service in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubServiceNotFound
	}
	return nil
}

// DeleteSubService soft-deletes a sub-service.
func (r *GormCatalogRepository) DeleteSubService(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.SubServiceModel{}, "id = ?", id)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to delete sub-service in db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubServiceNotFound
	}
	return nil
}

// ListSubServicesByService retrieves sub-services for a service.
func (r *GormCatalogRepository) ListSubServicesByService(ctx context.Context, serviceID string, activeOnly bool) ([]domain.SubService, error) {
	query := r.db.WithContext(ctx).Where("service_id = ?", serviceID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var models []domain.SubServiceModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list sub-services from db")
		return nil, err
	}
	return subServicesToDomain(models), nil
}

// ListRecommendedSubServices retrieves active recommended sub-services.
func (r *GormCatalogRepository) ListRecommendedSubServices(ctx context.Context) ([]domain.SubService, error) {
	var models []domain.SubServiceModel
	err := r.db.WithContext(ctx).
		Where("is_recommended = ? AND is_active = ?", true, true).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list recommended sub-services from db")
		return nil, err
	}
	return subServicesToDomain(models), nil
}

// ListMostBookedSubServices retrieves active most-booked sub-services.
func (r *GormCatalogRepository) ListMostBookedSubServices(ctx context.Context) ([]domain.SubService, error) {
	var models []domain.SubServiceModel
	err := r.db.WithContext(ctx).
		Where("is_most_booked = ? AND is_active = ?", true, true).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list most-booked sub-services from db")
		return nil, err
	}
	return subServicesToDomain(models), nil
}

func subServicesToDomain(models []domain.SubServiceModel) []domain.SubService {
	out := make([]domain.SubService, len(models))
	for i := range models {
		out[i] = *models[i].ToDomain()
	}
	return out
}
