package v1

import (
	"net/http"

	"preset-backend/internal/delivery/http/response"
	"preset-backend/internal/domain"
	"preset-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplaceUC domain.MarketplaceUsecase
}

func NewMarketplaceHandler(public *gin.RouterGroup, protected *gin.RouterGroup, marketplaceUC domain.MarketplaceUsecase) {
	handler := &MarketplaceHandler{marketplaceUC: marketplaceUC}

	publicProjects := public.Group("/projects/:id")
	{
		publicProjects.GET("/gear-requests/matches", handler.GearRequestsWithMatches)
		publicProjects.GET("/marketplace-stats", handler.Stats)
	}

	gearRequests := protected.Group("/gear-requests/:id")
	{
		gearRequests.POST("/convert", handler.Convert)
		gearRequests.POST("/link", handler.Link)
	}

	offers := protected.Group("/projects/:id/gear-offers")
	{
		offers.GET("", handler.ListOffers)
		offers.POST("", handler.CreateOffer)
	}
}

type LinkListingRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

// GearRequestsWithMatches godoc
// @Summary      Open gear requests with candidate listings
// @Tags         marketplace
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  response.Response{data=[]domain.GearRequestWithMatches}
// @Failure      404  {object}  response.Response
// @Router       /projects/{id}/gear-requests/matches [get]
func (h *MarketplaceHandler) GearRequestsWithMatches(c *gin.Context) {
	result, err := h.marketplaceUC.GetGearRequestsWithMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Gear requests retrieved", result)
}

// Stats godoc
// @Summary      Project marketplace statistics
// @Description  Counts are zero when they cannot be computed
// @Tags         marketplace
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  response.Response{data=domain.MarketplaceStats}
// @Router       /projects/{id}/marketplace-stats [get]
func (h *MarketplaceHandler) Stats(c *gin.Context) {
	stats := h.marketplaceUC.GetProjectMarketplaceStats(c.Request.Context(), c.Param("id"))
	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

// Convert godoc
// @Summary      Convert a gear request into a listing
// @Description  Creates an active listing owned by the project creator and marks the request fulfilled
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Gear request ID"
// @Param        listing  body  domain.ConvertListingInput  true  "Listing details"
// @Success      201  {object}  response.Response{data=domain.Listing}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gear-requests/{id}/convert [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) Convert(c *gin.Context) {
	var input domain.ConvertListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	listing, err := h.marketplaceUC.ConvertGearRequestToListing(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Listing created", listing)
}

// Link godoc
// @Summary      Link a gear request to an existing listing
// @Description  Checks compatibility and creates a pending gear offer from the listing owner
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Gear request ID"
// @Param        body  body  LinkListingRequest  true  "Listing to link"
// @Success      201  {object}  response.Response{data=domain.GearOffer}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gear-requests/{id}/link [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) Link(c *gin.Context) {
	var req LinkListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	offer, err := h.marketplaceUC.LinkGearRequestToListing(c.Request.Context(), c.Param("id"), req.ListingID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Gear offer created", offer)
}

// ListOffers godoc
// @Summary      List gear offers on a project
// @Tags         marketplace
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  response.Response{data=[]domain.GearOffer}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id}/gear-offers [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) ListOffers(c *gin.Context) {
	offers, err := h.marketplaceUC.ListGearOffers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Gear offers retrieved", offers)
}

// CreateOffer godoc
// @Summary      Offer gear to a project
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        id     path  string                 true  "Project ID"
// @Param        offer  body  domain.GearOfferInput  true  "Offer details"
// @Success      201  {object}  response.Response{data=domain.GearOffer}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /projects/{id}/gear-offers [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) CreateOffer(c *gin.Context) {
	var input domain.GearOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	offer, err := h.marketplaceUC.CreateGearOffer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Gear offer created", offer)
}
