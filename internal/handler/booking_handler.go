package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/internal/service"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/middleware"
	"github.com/Harshkesharwani789/wave-backend/pkg/response"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

// BookingHandler handles user-facing booking HTTP requests.
type BookingHandler struct {
	bookingService service.BookingService
	reviewService  service.ReviewService
	auth           *middleware.AuthMiddleware
}

func NewBookingHandler(bookingService service.BookingService, reviewService service.ReviewService, auth *middleware.AuthMiddleware) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		reviewService:  reviewService,
		auth:           auth,
	}
}

// RegisterRoutes registers booking routes.
func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/bookings", h.auth.Require(token.RoleUser))
	{
		api.POST("", h.CreateBooking)
		api.GET("", h.ListBookings)
		api.GET("/:id", h.GetBooking)
		api.POST("/:id/cancel", h.CancelBooking)
		api.POST("/:id/review", h.CreateReview)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.Create(ctx, middleware.GetActorID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentMode):
			response.BadRequest(c, "Invalid payment mode")
		case errors.Is(err, repository.ErrSubServiceNotFound):
			response.NotFound(c, "Sub-service not found")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to create booking")
			response.InternalError(c, "Failed to create booking")
		}
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()

	bookings, err := h.bookingService.ListUserBookings(ctx, middleware.GetActorID(c), c.Query("status"))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list user bookings")
		response.InternalError(c, "Failed to list bookings")
		return
	}

	response.OK(c, "", bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookingService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			response.NotFound(c, "Booking not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to get booking")
		response.InternalError(c, "Failed to get booking")
		return
	}

	if booking.UserID != middleware.GetActorID(c) {
		response.Forbidden(c, "Not your booking")
		return
	}

	response.OK(c, "", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.Cancel(ctx, c.Param("id"), middleware.GetActorID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			response.NotFound(c, "Booking not found")
		case errors.Is(err, service.ErrNotBookingOwner):
			response.Forbidden(c, "Not your booking")
		case errors.Is(err, service.ErrBookingAlreadyClosed):
			response.Conflict(c, "Booking is already completed or cancelled")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to cancel booking")
			response.InternalError(c, "Failed to cancel booking")
		}
		return
	}

	response.OK(c, "Booking cancelled", booking)
}

func (h *BookingHandler) CreateReview(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.BookingID = c.Param("id")

	review, err := h.reviewService.Create(ctx, middleware.GetActorID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			response.NotFound(c, "Booking not found")
		case errors.Is(err, service.ErrNotBookingOwner):
			response.Forbidden(c, "Not your booking")
		case errors.Is(err, service.ErrBookingNotCompleted):
			response.Conflict(c, "Only completed bookings can be reviewed")
		case errors.Is(err, repository.ErrDuplicateReview):
			response.Conflict(c, "Booking already reviewed")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to create review")
			response.InternalError(c, "Failed to create review")
		}
		return
	}

	response.Created(c, "Review submitted for moderation", review)
}
