package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Harshkesharwani789/wave-backend/internal/service"
	"github.com/Harshkesharwani789/wave-backend/pkg/log"
	"github.com/Harshkesharwani789/wave-backend/pkg/response"
)

// PublicHandler serves unauthenticated reads: the catalog tree, home
// lists, banners, and partner reviews.
type PublicHandler struct {
	catalogService service.CatalogService
	bannerService  service.BannerService
	reviewService  service.ReviewService
}

func NewPublicHandler(catalogService service.CatalogService, bannerService service.BannerService, reviewService service.ReviewService) *PublicHandler {
	return &PublicHandler{
		catalogService: catalogService,
		bannerService:  bannerService,
		reviewService:  reviewService,
	}
}

// RegisterRoutes registers public routes.
func (h *PublicHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/catalog", h.GetCatalogTree)
		api.GET("/catalog/recommended", h.GetRecommended)
		api.GET("/catalog/most-booked", h.GetMostBooked)
		api.GET("/banners", h.ListBanners)
		api.GET("/partners/:id/reviews", h.ListPartnerReviews)
	}
}

func (h *PublicHandler) GetCatalogTree(c *gin.Context) {
	ctx := c.Request.Context()

	tree, err := h.catalogService.GetCatalogTree(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to get catalog tree")
		response.InternalError(c, "Failed to get catalog")
		return
	}

	response.OK(c, "", tree)
}

func (h *PublicHandler) GetRecommended(c *gin.Context) {
	ctx := c.Request.Context()

	subs, err := h.catalogService.GetRecommended(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to get recommended sub-services")
		response.InternalError(c, "Failed to get recommended services")
		return
	}

	response.OK(c, "", subs)
}

func (h *PublicHandler) GetMostBooked(c *gin.Context) {
	ctx := c.Request.Context()

	subs, err := h.catalogService.GetMostBooked(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to get most-booked sub-services")
		response.InternalError(c, "Failed to get most booked services")
		return
	}

	response.OK(c, "", subs)
}

func (h *PublicHandler) ListBanners(c *gin.Context) {
	ctx := c.Request.Context()

	banners, err := h.bannerService.List(ctx, true)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list banners")
		response.InternalError(c, "Failed to list banners")
		return
	}

	response.OK(c, "", banners)
}

func (h *PublicHandler) ListPartnerReviews(c *gin.Context) {
	ctx := c.Request.Context()

	reviews, err := h.reviewService.ListByPartner(ctx, c.Param("id"))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list partner reviews")
		response.InternalError(c, "Failed to list reviews")
		return
	}

	response.OK(c, "", reviews)
}
