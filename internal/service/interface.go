package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/hub"
)

var (
	// ErrChatNotAvailable is returned when a booking exists but is not in
	// the accepted state. ErrBookingMissing is returned when it does not
	// exist at all. Both map to the same message on the wire so clients
	// cannot probe for booking IDs.
	ErrChatNotAvailable = errors.New("chat not available for booking")
	ErrBookingMissing   = errors.New("booking does not exist")

	// ErrNotInChatRoom is returned when a connection sends or reads
	// before joining the booking's room.
	ErrNotInChatRoom = errors.New("connection has not joined the chat room")

	ErrEmptyMessage = errors.New("message text is empty")

	ErrBookingNotPending     = errors.New("booking is not pending")
	ErrBookingAlreadyClosed  = errors.New("booking is already completed or cancelled")
	ErrPartnerNotApproved    = errors.New("partner is not approved")
	ErrProfileIncomplete     = errors.New("partner profile is incomplete")
	ErrKYCNotVerified        = errors.New("partner kyc is not verified")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrInvalidPaymentMode    = errors.New("invalid payment mode")
	ErrBookingNotCompleted   = errors.New("booking is not completed")
	ErrNotBookingOwner       = errors.New("actor does not own this booking")
)

// ChatService implements the booking chat operations behind the
// WebSocket gateway.
type ChatService interface {
	// HandleJoinChat validates eligibility and adds the connection to the
	// booking's room.
	HandleJoinChat(ctx context.Context, c *hub.Client, bookingID, userID string) error
	// HandleSendMessage persists one message and broadcasts the full
	// history to the booking's room. The sender must have joined first.
	HandleSendMessage(ctx context.Context, c *hub.Client, ev *domain.SendMessageEvent) error
	// HandleGetMessages sends the booking's history to the requesting
	// connection only.
	HandleGetMessages(ctx context.Context, c *hub.Client, bookingID string) error
	// HandleDisconnect removes the connection from all rooms.
	HandleDisconnect(ctx context.Context, c *hub.Client)
}

// BookingService implements the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Accept(ctx context.Context, bookingID, partnerID string) (*domain.Booking, error)
	Reject(ctx context.Context, bookingID, partnerID string) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID string) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, userID string, req *domain.CancelBookingRequest) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID string, status string) ([]domain.Booking, error)
	ListPartnerBookings(ctx context.Context, partnerID string, status string) ([]domain.Booking, error)
}

// PartnerService implements partner onboarding and administration.
type PartnerService interface {
	SendLoginOTP(ctx context.Context, phone string) error
	VerifyLoginOTP(ctx context.Context, phone, code string) (*domain.PartnerLoginResult, error)
	GetProfile(ctx context.Context, partnerID string) (*domain.Partner, error)
	CompleteProfile(ctx context.Context, partnerID string, req *domain.CompleteProfileRequest) (*domain.Partner, error)
	SelectCategory(ctx context.Context, partnerID string, req *domain.SelectCategoryRequest) (*domain.Partner, error)
	UpdateKYC(ctx context.Context, partnerID string, req *domain.UpdateKYCRequest, aadharDoc, panDoc *multipart.FileHeader) (*domain.Partner, error)
	UpdateBankDetails(ctx context.Context, partnerID string, req *domain.UpdateBankDetailsRequest) (*domain.Partner, error)

	// Admin operations.
	VerifyKYC(ctx context.Context, adminID, partnerID string, req *domain.VerifyKYCRequest) (*domain.Partner, error)
	UpdateStatus(ctx context.Context, adminID, partnerID string, req *domain.UpdatePartnerStatusRequest) (*domain.Partner, error)
	ListPartners(ctx context.Context, status string, page, pageSize int) ([]domain.Partner, int, error)
	ListPendingKYC(ctx context.Context, page, pageSize int) ([]domain.Partner, int, error)
}

// CatalogService implements the service catalog tree and its cache.
type CatalogService interface {
	CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, id string, req *domain.UpdateCategoryRequest) (*domain.ServiceCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.Service, error)
	UpdateService(ctx context.Context, id string, req *domain.UpdateServiceRequest) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error

	CreateSubService(ctx context.Context, req *domain.CreateSubServiceRequest) (*domain.SubService, error)
	UpdateSubService(ctx context.Context, id string, req *domain.UpdateSubServiceRequest) (*domain.SubService, error)
	DeleteSubService(ctx context.Context, id string) error

	// Public reads, served from cache when warm.
	GetCatalogTree(ctx context.Context) ([]domain.CategoryTree, error)
	GetRecommended(ctx context.Context) ([]domain.SubService, error)
	GetMostBooked(ctx context.Context) ([]domain.SubService, error)
}

// BannerService implements home banner management.
type BannerService interface {
	Upload(ctx context.Context, title, description string, displayOrder int, file *multipart.FileHeader) (*domain.Banner, error)
	Update(ctx context.Context, id string, req *domain.UpdateBannerRequest) (*domain.Banner, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]domain.Banner, error)
}

// ReviewService implements booking reviews and moderation.
type ReviewService interface {
	Create(ctx context.Context, userID string, req *domain.CreateReviewRequest) (*domain.Review, error)
	Moderate(ctx context.Context, adminID, reviewID string, req *domain.ModerateReviewRequest) (*domain.Review, error)
	ListByPartner(ctx context.Context, partnerID string) ([]domain.Review, error)
	ListPending(ctx context.Context) ([]domain.Review, error)
}
