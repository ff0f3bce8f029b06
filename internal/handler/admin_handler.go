package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Harshkesharwani789/wave-backend/internal/domain"
	"github.com/Harshkesharwani789/wave-backend/internal/repository"
	"github.com/Harshkesharwani789/wave-backend/internal/service"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/middleware"
	"github.com/Harshkesharwani789/wave-backend/pkg/response"
	"github.com/Harshkesharwani789/wave-backend/pkg/token"
)

// AdminHandler handles admin HTTP requests: partner review, booking
// oversight, catalog management, banners, and review moderation.
type AdminHandler struct {
	partnerService service.PartnerService
	bookingService service.BookingService
	catalogService service.CatalogService
	bannerService  service.BannerService
	reviewService  service.ReviewService
	auth           *middleware.AuthMiddleware
}

func NewAdminHandler(
	partnerService service.PartnerService,
	bookingService service.BookingService,
	catalogService service.CatalogService,
	bannerService service.BannerService,
	reviewService service.ReviewService,
	auth *middleware.AuthMiddleware,
) *AdminHandler {
	return &AdminHandler{
		partnerService: partnerService,
		bookingService: bookingService,
		catalogService: catalogService,
		bannerService:  bannerService,
		reviewService:  reviewService,
		auth:           auth,
	}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/admin", h.auth.Require(token.RoleAdmin))
	{
		partners := api.Group("/partners")
		{
			partners.GET("", h.ListPartners)
			partners.GET("/pending-kyc", h.ListPendingKYC)
			partners.GET("/:id", h.GetPartnerDetails)
			partners.PUT("/:id/status", h.UpdatePartnerStatus)
			partners.PUT("/:id/kyc", h.VerifyKYC)
		}

		api.GET("/users/:id/bookings", h.ListUserBookings)
		api.PUT("/bookings/:id/complete", h.CompleteBooking)

		catalog := api.Group("/catalog")
		{
			catalog.POST("/categories", h.CreateCategory)
			catalog.PUT("/categories/:id", h.UpdateCategory)
			catalog.DELETE("/categories/:id", h.DeleteCategory)

			catalog.POST("/services", h.CreateService)
			catalog.PUT("/services/:id", h.UpdateService)
			catalog.DELETE("/services/:id", h.DeleteService)

			catalog.POST("/sub-services", h.CreateSubService)
			catalog.PUT("/sub-services/:id", h.UpdateSubService)
			catalog.DELETE("/sub-services/:id", h.DeleteSubService)
		}

		banners := api.Group("/banners")
		{
			banners.POST("", h.UploadBanner)
			banners.GET("", h.ListBanners)
			banners.PUT("/:id", h.UpdateBanner)
			banners.DELETE("/:id", h.DeleteBanner)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/pending", h.ListPendingReviews)
			reviews.PUT("/:id", h.ModerateReview)
		}
	}
}

func (h *AdminHandler) ListPartners(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	partners, total, err := h.partnerService.ListPartners(ctx, c.Query("status"), page, pageSize)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list partners")
		response.InternalError(c, "Failed to list partners")
		return
	}

	response.OK(c, "", gin.H{
		"partners": partners,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *AdminHandler) ListPendingKYC(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	partners, total, err := h.partnerService.ListPendingKYC(ctx, page, pageSize)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list pending kyc")
		response.InternalError(c, "Failed to list pending KYC")
		return
	}

	response.OK(c, "", gin.H{
		"partners": partners,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *AdminHandler) GetPartnerDetails(c *gin.Context) {
	ctx := c.Request.Context()

	partner, err := h.partnerService.GetProfile(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPartnerNotFound) {
			response.NotFound(c, "Partner not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to get partner details")
		response.InternalError(c, "Failed to get partner details")
		return
	}

	response.OK(c, "", partner)
}

func (h *AdminHandler) ListUserBookings(c *gin.Context) {
	ctx := c.Request.Context()

	bookings, err := h.bookingService.ListUserBookings(ctx, c.Param("id"), c.Query("status"))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list user bookings")
		response.InternalError(c, "Failed to list bookings")
		return
	}

	response.OK(c, "", bookings)
}

func (h *AdminHandler) CompleteBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.bookingService.Complete(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			response.NotFound(c, "Booking not found")
		case errors.Is(err, service.ErrBookingAlreadyClosed):
			response.Conflict(c, "Booking is already completed or cancelled")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to complete booking")
			response.InternalError(c, "Failed to complete booking")
		}
		return
	}

	response.OK(c, "Booking completed", booking)
}

func (h *AdminHandler) UpdatePartnerStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdatePartnerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.UpdateStatus(ctx, middleware.GetActorID(c), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPartnerNotFound):
			response.NotFound(c, "Partner not found")
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, "Invalid status value")
		case errors.Is(err, service.ErrProfileIncomplete):
			response.Conflict(c, "Partner profile is incomplete")
		case errors.Is(err, service.ErrKYCNotVerified):
			response.Conflict(c, "Partner KYC is not verified")
		default:
			log.Ctx(ctx).Error().Err(err).Msg("failed to update partner status")
			response.InternalError(c, "Failed to update partner status")
		}
		return
	}

	response.OK(c, "Partner status updated", partner)
}

func (h *AdminHandler) VerifyKYC(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.VerifyKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.partnerService.VerifyKYC(ctx, middleware.GetActorID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrPartnerNotFound) {
			response.NotFound(c, "Partner not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to verify partner kyc")
		response.InternalError(c, "Failed to review KYC")
		return
	}

	response.OK(c, "KYC reviewed", partner)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.catalogService.CreateCategory(ctx, &req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create category")
		response.InternalError(c, "Failed to create category")
		return
	}

	response.Created(c, "Category created", category)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.catalogService.UpdateCategory(ctx, c.Param("id"), &req)
	if err != nil {
		h.catalogError(c, err, "failed to update category")
		return
	}

	response.OK(c, "Category updated", category)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.catalogError(c, err, "failed to delete category")
		return
	}
	response.OK(c, "Category deleted", nil)
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(ctx, &req)
	if err != nil {
		h.catalogError(c, err, "failed to create service")
		return
	}

	response.Created(c, "Service created", svc)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(ctx, c.Param("id"), &req)
	if err != nil {
		h.catalogError(c, err, "failed to update service")
		return
	}

	response.OK(c, "Service updated", svc)
}

func (h *AdminHandler) DeleteService(c *gin.Context) {
	if err := h.catalogService.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		h.catalogError(c, err, "failed to delete service")
		return
	}
	response.OK(c, "Service deleted", nil)
}

func (h *AdminHandler) CreateSubService(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.CreateSubServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.catalogService.CreateSubService(ctx, &req)
	if err != nil {
		h.catalogError(c, err, "failed to create sub-service")
		return
	}

	response.Created(c, "Sub-service created", sub)
}

func (h *AdminHandler) UpdateSubService(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateSubServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, err := h.catalogService.UpdateSubService(ctx, c.Param("id"), &req)
	if err != nil {
		h.catalogError(c, err, "failed to update sub-service")
		return
	}

	response.OK(c, "Sub-service updated", sub)
}

func (h *AdminHandler) DeleteSubService(c *gin.Context) {
	if err := h.catalogService.DeleteSubService(c.Request.Context(), c.Param("id")); err != nil {
		h.catalogError(c, err, "failed to delete sub-service")
		return
	}
	response.OK(c, "Sub-service deleted", nil)
}

func (h *AdminHandler) catalogError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		response.NotFound(c, "Category not found")
	case errors.Is(err, repository.ErrServiceNotFound):
		response.NotFound(c, "Service not found")
	case errors.Is(err, repository.ErrSubServiceNotFound):
		response.NotFound(c, "Sub-service not found")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg(logMsg)
		response.InternalError(c, "Something went wrong")
	}
}

// UploadBanner accepts a multipart form with "image", "title",
// "description", and "displayOrder" fields.
func (h *AdminHandler) UploadBanner(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Banner image is required")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		response.BadRequest(c, "Banner title is required")
		return
	}
	displayOrder, _ := strconv.Atoi(c.DefaultPostForm("displayOrder", "0"))

	banner, err := h.bannerService.Upload(ctx, title, c.PostForm("description"), displayOrder, file)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to upload banner")
		response.InternalError(c, "Failed to upload banner")
		return
	}

	response.Created(c, "Banner uploaded", banner)
}

func (h *AdminHandler) ListBanners(c *gin.Context) {
	ctx := c.Request.Context()

	banners, err := h.bannerService.List(ctx, false)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list banners")
		response.InternalError(c, "Failed to list banners")
		return
	}

	response.OK(c, "", banners)
}

func (h *AdminHandler) UpdateBanner(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	banner, err := h.bannerService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			response.NotFound(c, "Banner not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update banner")
		response.InternalError(c, "Failed to update banner")
		return
	}

	response.OK(c, "Banner updated", banner)
}

func (h *AdminHandler) DeleteBanner(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.bannerService.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			response.NotFound(c, "Banner not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete banner")
		response.InternalError(c, "Failed to delete banner")
		return
	}

	response.OK(c, "Banner deleted", nil)
}

func (h *AdminHandler) ListPendingReviews(c *gin.Context) {
	ctx := c.Request.Context()

	reviews, err := h.reviewService.ListPending(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list pending reviews")
		response.InternalError(c, "Failed to list reviews")
		return
	}

	response.OK(c, "", reviews)
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Moderate(ctx, middleware.GetActorID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			response.NotFound(c, "Review not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to moderate review")
		response.InternalError(c, "Failed to moderate review")
		return
	}

	response.OK(c, "Review moderated", review)
}
