package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/storage"
)

const bannerURLTTL = time.Hour

type bannerService struct {
	banners repository.BannerRepository
	files   storage.Storage
}

func NewBannerService(banners repository.BannerRepository, files storage.Storage) BannerService {
	return &bannerService{
		banners: banners,
		files:   files,
	}
}

// Upload stores the banner image and creates the banner record.
func (s *bannerService) Upload(ctx context.Context, title, description string, displayOrder int, file *multipart.FileHeader) (*domain.Banner, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded banner image: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("banners/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := s.files.Write(ctx, key, src, file.Size, contentType); err != nil {
		return nil, err
	}

	banner := &domain.Banner{
		Title:        title,
		Description:  description,
		ImageKey:     key,
		DisplayOrder: displayOrder,
	}
	if err := s.banners.Create(ctx, banner); err != nil {
		// Record failed; do not leave the image orphaned.
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			log.Ctx(ctx).Warn().Err(delErr).Str("key", key).Msg("failed to clean up banner image")
		}
		return nil, err
	}

	banner.ImageURL = s.resolveURL(ctx, banner.ImageKey)
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, id string, req *domain.UpdateBannerRequest) (*domain.Banner, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Description != nil {
		banner.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		banner.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}

	banner.ImageURL = s.resolveURL(ctx, banner.ImageKey)
	return banner, nil
}

// Delete removes the banner record and its stored image.
func (s *bannerService) Delete(ctx context.Context, id string) error {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.files.Delete(ctx, banner.ImageKey); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", banner.ImageKey).Msg("failed to delete banner image")
	}
	return nil
}

func (s *bannerService) List(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	banners, err := s.banners.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range banners {
		banners[i].ImageURL = s.resolveURL(ctx, banners[i].ImageKey)
	}
	return banners, nil
}

func (s *bannerService) resolveURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.files.GetURL(ctx, key, bannerURLTTL)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to resolve banner url")
		return ""
	}
	return url
}
