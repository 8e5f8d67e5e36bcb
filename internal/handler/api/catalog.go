package api

import (
	"net/http"
	"time"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	home       queries.HomeQueries
	vehicles   queries.VehicleQueries
	categories queries.CategoryQueries
	loc        *time.Location
}

func NewCatalogHandler(home queries.HomeQueries, vehicles queries.VehicleQueries, categories queries.CategoryQueries, loc *time.Location) *CatalogHandler {
	return &CatalogHandler{
		home:       home,
		vehicles:   vehicles,
		categories: categories,
		loc:        loc,
	}
}

// @Summary Home page
// @Description Newest available vehicles, categories and available counts per type
// @Tags catalog
// @Produce json
// @Success 200 {object} resdto.HomeResponse
// @Router /home [get]
func (h *CatalogHandler) Home(c *gin.Context) {
	view, err := h.home.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHomeView(view))
}

// @Summary List vehicles
// @Description Available vehicles, 12 per page
// @Tags catalog
// @Produce json
// @Param type query string false "bike, car or traveller"
// @Param brand query string false "Case-insensitive brand substring"
// @Param min_price query string false "Minimum price per day"
// @Param max_price query string false "Maximum price per day"
// @Param seats query int false "Minimum seats"
// @Param page query string false "Page number"
// @Success 200 {object} resdto.VehiclePageResponse
// @Failure 400 {object} httperr.Response
// @Router /vehicles [get]
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	var q reqdto.VehicleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		badRequest(c, err, err.Error())
		return
	}

	page, err := h.vehicles.List(c.Request.Context(), filter, q.Page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVehiclePage(page))
}

// @Summary Vehicle detail
// @Description Vehicle with reviews, average rating, the caller's review and similar vehicles
// @Tags catalog
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id} [get]
func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var viewer *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		viewer = &userID
	}

	detail, err := h.vehicles.GetDetail(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVehicleDetail(detail))
}

// @Summary Price quote
// @Description Validate a rental interval and compute its total without booking
// @Tags catalog
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param start query string true "Start (RFC 3339 or local YYYY-MM-DDTHH:MM)"
// @Param end query string true "End (RFC 3339 or local YYYY-MM-DDTHH:MM)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id}/quote [get]
func (h *CatalogHandler) Quote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "start and end are required")
		return
	}
	start, end, err := q.Parse(h.loc)
	if err != nil {
		badRequest(c, err, err.Error())
		return
	}

	quote, err := h.vehicles.Quote(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPriceQuote(quote))
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.CategoryView
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// @Summary Vehicles in category
// @Description Available vehicles of one category, 9 per page
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Param page query string false "Page number"
// @Success 200 {object} resdto.CategoryVehiclesResponse
// @Failure 404 {object} httperr.Response
// @Router /categories/{id}/vehicles [get]
func (h *CatalogHandler) CategoryVehicles(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cv, err := h.categories.VehiclesInCategory(c.Request.Context(), id, c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryVehicles(cv))
}
