package repository

import (
	"context"
	"errors"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrChatSessionNotFound = errors.New("chat session not found")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrSubServiceNotFound  = errors.New("sub-service not found")
	ErrBannerNotFound      = errors.New("banner not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrDuplicateReview     = errors.New("booking already reviewed")
	ErrDuplicatePhone      = errors.New("phone already registered")
)

// BookingRepository defines the interface for booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	ListByUser(ctx context.Context, userID string, status string) ([]domain.Booking, error)
	ListByPartner(ctx context.Context, partnerID string, status string) ([]domain.Booking, error)
}

// ChatRepository defines the interface for booking chat persistence.
// AppendMessage inserts one message and returns the full history in a
// single transaction, so concurrent sends never lose each other's writes.
type ChatRepository interface {
	AppendMessage(ctx context.Context, bookingID string, msg domain.ChatMessage) ([]domain.ChatMessage, error)
	GetHistory(ctx context.Context, bookingID string) ([]domain.ChatMessage, error)
	GetSession(ctx context.Context, bookingID string) (*domain.ChatSession, error)
}

// PartnerRepository defines the interface for partner persistence.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	GetByID(ctx context.Context, id string) (*domain.Partner, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Partner, error)
	Update(ctx context.Context, partner *domain.Partner) error
	List(ctx context.Context, status string, page, pageSize int) ([]domain.Partner, int, error)
}

// CatalogRepository defines the interface for the service catalog tree.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.ServiceCategory) error
	GetCategory(ctx context.Context, id string) (*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, c *domain.ServiceCategory) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.ServiceCategory, error)

	CreateService(ctx context.Context, s *domain.Service) error
	GetService(ctx context.Context, id string) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id string) error
	ListServicesByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]domain.Service, error)

	CreateSubService(ctx context.Context, s *domain.SubService) error
	GetSubService(ctx context.Context, id string) (*domain.SubService, error)
	UpdateSubService(ctx context.Context, s *domain.SubService) error
	DeleteSubService(ctx context.Context, id string) error
	ListSubServicesByService(ctx context.Context, serviceID string, activeOnly bool) ([]domain.SubService, error)
	ListRecommendedSubServices(ctx context.Context) ([]domain.SubService, error)
	ListMostBookedSubServices(ctx context.Context) ([]domain.SubService, error)
}

// BannerRepository defines the interface for home banner persistence.
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id string) (*domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]domain.Banner, error)
}

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus) error
	ListByPartner(ctx context.Context, partnerID string, approvedOnly bool) ([]domain.Review, error)
	ListPending(ctx context.Context) ([]domain.Review, error)
}
