package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Harshkesharwani789/wave-backend/internal/cache"
	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/storage"
)

type catalogService struct {
	catalog repository.CatalogRepository
	cache   *cache.RedisCatalogCache
	files   storage.Storage
	cfg     config.CatalogConfig
	group   singleflight.Group
}

func NewCatalogService(
	catalog repository.CatalogRepository,
	c *cache.RedisCatalogCache,
	files storage.Storage,
	cfg config.CatalogConfig,
) CatalogService {
	return &catalogService{
		catalog: catalog,
		cache:   c,
		files:   files,
		cfg:     cfg,
	}
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.ServiceCategory, error) {
	category := &domain.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.catalog.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id string, req *domain.UpdateCategoryRequest) (*domain.ServiceCategory, error) {
	category, err := s.catalog.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.catalog.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.catalog.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.Service, error) {
	if _, err := s.catalog.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.catalog.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id string, req *domain.UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.catalog.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.catalog.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.catalog.DeleteService(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) CreateSubService(ctx context.Context, req *domain.CreateSubServiceRequest) (*domain.SubService, error) {
	if _, err := s.catalog.GetService(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	sub := &domain.SubService{
		ServiceID:     req.ServiceID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationMins:  req.DurationMins,
		IsRecommended: req.IsRecommended,
		IsMostBooked:  req.IsMostBooked,
	}
	if err := s.catalog.CreateSubService(ctx, sub); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sub, nil
}

func (s *catalogService) UpdateSubService(ctx context.Context, id string, req *domain.UpdateSubServiceRequest) (*domain.SubService, error) {
	sub, err := s.catalog.GetSubService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.Price != nil {
		sub.Price = *req.Price
	}
	if req.DurationMins != nil {
		sub.DurationMins = *req.DurationMins
	}
	if req.IsRecommended != nil {
		sub.IsRecommended = *req.IsRecommended
	}
	if req.IsMostBooked != nil {
		sub.IsMostBooked = *req.IsMostBooked
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	if err := s.catalog.UpdateSubService(ctx, sub); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sub, nil
}

func (s *catalogService) DeleteSubService(ctx context.Context, id string) error {
	if err := s.catalog.DeleteSubService(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetCatalogTree returns the full active catalog. Reads are served from
// the cache when warm; cold reads are deduplicated through singleflight
// so one database walk fills the cache for all concurrent callers.
func (s *catalogService) GetCatalogTree(ctx context.Context) ([]domain.CategoryTree, error) {
	if s.cache != nil {
		tree, err := s.cache.GetTree(ctx, s.cache.TreeKey())
		if err == nil {
			return tree, nil
		}
		if err != cache.ErrCacheMiss {
			log.Ctx(ctx).Warn().Err(err).Msg("catalog cache read failed")
		}
	}

	result, err, _ := s.group.Do("catalog-tree", func() (interface{}, error) {
		tree, err := s.buildTree(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetTree(ctx, s.cache.TreeKey(), tree, s.cfg.CacheTTL); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("catalog cache write failed")
			}
		}
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.CategoryTree), nil
}

func (s *catalogService) buildTree(ctx context.Context) ([]domain.CategoryTree, error) {
	categories, err := s.catalog.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}

	tree := make([]domain.CategoryTree, 0, len(categories))
	for _, category := range categories {
		category.ImageURL = s.resolveURL(ctx, category.ImageKey)

		services, err := s.catalog.ListServicesByCategory(ctx, category.ID, true)
		if err != nil {
			return nil, err
		}

		serviceTrees := make([]domain.ServiceTree, 0, len(services))
		for _, svc := range services {
			svc.ImageURL = s.resolveURL(ctx, svc.ImageKey)

			subs, err := s.catalog.ListSubServicesByService(ctx, svc.ID, true)
			if err != nil {
				return nil, err
			}
			for i := range subs {
				subs[i].ImageURL = s.resolveURL(ctx, subs[i].ImageKey)
			}
			serviceTrees = append(serviceTrees, domain.ServiceTree{
				Service:     svc,
				SubServices: subs,
			})
		}

		tree = append(tree, domain.CategoryTree{
			ServiceCategory: category,
			Services:        serviceTrees,
		})
	}
	return tree, nil
}

func (s *catalogService) resolveURL(ctx context.Context, key string) string {
	if key == "" || s.files == nil {
		return ""
	}
	url, err := s.files.GetURL(ctx, key, s.cfg.CacheTTL)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to resolve image url")
		return ""
	}
	return url
}

func (s *catalogService) GetRecommended(ctx context.Context) ([]domain.SubService, error) {
	return s.cachedList(ctx, "catalog-recommended", s.recommendedKey(), s.catalog.ListRecommendedSubServices)
}

func (s *catalogService) GetMostBooked(ctx context.Context) ([]domain.SubService, error) {
	return s.cachedList(ctx, "catalog-most-booked", s.mostBookedKey(), s.catalog.ListMostBookedSubServices)
}

func (s *catalogService) recommendedKey() string {
	if s.cache == nil {
		return ""
	}
	return s.cache.RecommendedKey()
}

func (s *catalogService) mostBookedKey() string {
	if s.cache == nil {
		return ""
	}
	return s.cache.MostBookedKey()
}

func (s *catalogService) cachedList(
	ctx context.Context,
	flightKey, cacheKey string,
	load func(context.Context) ([]domain.SubService, error),
) ([]domain.SubService, error) {
	if s.cache != nil {
		subs, err := s.cache.GetSubServices(ctx, cacheKey)
		if err == nil {
			return subs, nil
		}
		if err != cache.ErrCacheMiss {
			log.Ctx(ctx).Warn().Err(err).Msg("catalog cache read failed")
		}
	}

	result, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		subs, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetSubServices(ctx, cacheKey, subs, s.cfg.CacheTTL); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("catalog cache write failed")
			}
		}
		return subs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SubService), nil
}
