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

// PartnerHandler handles partner-facing HTTP requests: OTP login,
// profile, KYC, and bank details.
type PartnerHandler struct {
	partnerService service.PartnerService
	bookingService service.BookingService
	auth           *middleware.AuthMiddleware
}

func NewPartnerHandler(partnerService service.PartnerService, bookingService service.BookingService, auth *middleware.AuthMiddleware) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		bookingService: bookingService,
		auth:           auth,
	}
}

// RegisterRoutes registers partner routes.
func (h *PartnerHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/partner")
	{
		api.POST("/auth/send-otp", h.SendOTP)
		api.POST("/auth/resend-otp", h.SendOTP)
		api.POST("/auth/verify-otp", h.VerifyOTP)

		protected := api.Group("", h.auth.Require(token.RolePartner))
		{
			protected.GET("/profile", h.GetProfile)
			protected.PUT("/profile", h.CompleteProfile)
			protected.PUT("/category", h.SelectCategory)
			protected.PUT("/kyc", h.UpdateKYC)
			protected.PUT("/bank-details", h.UpdateBankDetails)

			protected.GET("/bookings", h.ListBookings)
			protected.POST("/bookings/:id/accept", h.AcceptBooking)
			protected.POST("/bookings/:id/reject", h.RejectBooking)
			protected.POST("/bookings/:id/complete", h.CompleteBooking)
		}
	}
}

// SendOTP issues a login code to the given phone. Resend reuses the same
// flow: the previous code is replaced.
func (h *PartnerHandler) SendOTP(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Phone number is required")
		return
	}

	if err := h.partnerService.SendLoginOTP(ctx, req.Phone); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to send login otp")
		response.InternalError(c, "Failed to send OTP")
		return
	}

	response.OK(c, "OTP sent successfully", nil)
}

func (h *PartnerHandler) VerifyOTP(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Phone and OTP are required")
		return
	}

	result, err := h.partnerService.VerifyLoginOTP(ctx, req.Phone, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOTPInvalid):
			response.BadRequest(c, "Invalid or expired OTP")
		case errors.Is(err, repository.ErrPartnerNotFound):
			response.NotFound(c, "Partner not found")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to verify login otp")
			response.InternalError(c, "Failed to verify OTP")
		}
		return
	}

	response.OK(c, "Login successful", result)
}

func (h *PartnerHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	partner, err := h.partnerService.GetProfile(ctx, middleware.GetActorID(c))
	if err != nil {
		if errors.Is(err, repository.ErrPartnerNotFound) {
			response.NotFound(c, "Partner not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to get partner profile")
		response.InternalError(c, "Failed to get profile")
		return
	}

	response.OK(c, "", partner)
}

func (h *PartnerHandler) CompleteProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.CompleteProfile(ctx, middleware.GetActorID(c), &req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to complete partner profile")
		response.InternalError(c, "Failed to update profile")
		return
	}

	response.OK(c, "Profile updated successfully", partner)
}

func (h *PartnerHandler) SelectCategory(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.SelectCategory(ctx, middleware.GetActorID(c), &req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to select partner category")
		response.InternalError(c, "Failed to update category")
		return
	}

	response.OK(c, "Category updated successfully", partner)
}

// UpdateKYC accepts identity numbers as form fields and optional
// multipart document scans under "aadharDoc" and "panDoc".
func (h *PartnerHandler) UpdateKYC(c *gin.Context) {
	ctx := c.Request.Context()

	req := domain.UpdateKYCRequest{
		AadharNumber: c.PostForm("aadharNumber"),
		PanNumber:    c.PostForm("panNumber"),
	}

	aadharDoc, _ := c.FormFile("aadharDoc")
	panDoc, _ := c.FormFile("panDoc")

	partner, err := h.partnerService.UpdateKYC(ctx, middleware.GetActorID(c), &req, aadharDoc, panDoc)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to update partner kyc")
		response.InternalError(c, "Failed to update KYC details")
		return
	}

	response.OK(c, "KYC details submitted for review", partner)
}

func (h *PartnerHandler) UpdateBankDetails(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.UpdateBankDetails(ctx, middleware.GetActorID(c), &req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to update partner bank details")
		response.InternalError(c, "Failed to update bank details")
		return
	}

	response.OK(c, "Bank details updated successfully", partner)
}

func (h *PartnerHandler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()

	bookings, err := h.bookingService.ListPartnerBookings(ctx, middleware.GetActorID(c), c.Query("status"))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list partner bookings")
		response.InternalError(c, "Failed to list bookings")
		return
	}

	response.OK(c, "", bookings)
}

func (h *PartnerHandler) AcceptBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookingService.Accept(ctx, c.Param("id"), middleware.GetActorID(c))
	if err != nil {
		h.bookingError(c, err, "failed to accept booking")
		return
	}

	response.OK(c, "Booking accepted", booking)
}

func (h *PartnerHandler) RejectBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookingService.Reject(ctx, c.Param("id"), middleware.GetActorID(c))
	if err != nil {
		h.bookingError(c, err, "failed to reject booking")
		return
	}

	response.OK(c, "Booking rejected", booking)
}

func (h *PartnerHandler) CompleteBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookingService.Complete(ctx, c.Param("id"))
	if err != nil {
		h.bookingError(c, err, "failed to complete booking")
		return
	}

	response.OK(c, "Booking completed", booking)
}

func (h *PartnerHandler) bookingError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, service.ErrBookingNotPending):
		response.Conflict(c, "Booking is not pending")
	case errors.Is(err, service.ErrBookingAlreadyClosed):
		response.Conflict(c, "Booking is already completed or cancelled")
	case errors.Is(err, service.ErrPartnerNotApproved):
		response.Forbidden(c, "Partner is not approved")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg(logMsg)
		response.InternalError(c, "Something went wrong")
	}
}
