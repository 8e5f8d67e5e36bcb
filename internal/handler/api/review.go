package api

import (
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler serves vehicle reviews. Listing is public; writing needs a
// signed-in user.
type ReviewHandler struct {
	write commands.ReviewCommands
	read  queries.ReviewQueries
}

func NewReviewHandler(write commands.ReviewCommands, read queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{write: write, read: read}
}

// @Summary Review a vehicle
// @Description Review a vehicle; one review per user and vehicle
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.CreateReviewRequest true "Rating and comment"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vehicles/{id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	vehicleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Malformed review body")
		return
	}

	id, err := h.write.Create(c.Request.Context(), vehicleID, req.ToInput(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.render(c, http.StatusCreated, id)
}

// @Summary Edit a review
// @Description Partial update of the caller's own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review UUID"
// @Param request body reqdto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Malformed review body")
		return
	}

	// omitted fields are filled from the stored review
	existing, err := h.read.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.write.Update(c.Request.Context(), id, req.ToInput(existing), actor); err != nil {
		respondError(c, err)
		return
	}
	h.render(c, http.StatusOK, id)
}

// @Summary Remove a review
// @Description Authors remove their own review; staff may remove any
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review UUID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.write.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List vehicle reviews
// @Description Reviews of a vehicle, newest first, with optional rating filters and keyset pagination
// @Tags reviews
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param min_rating query int false "Lowest rating to include"
// @Param max_rating query int false "Highest rating to include"
// @Param limit query int false "Page size, 1 to 100"
// @Param after query string false "Opaque cursor from the previous page"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} httperr.Response
// @Router /vehicles/{id}/reviews [get]
func (h *ReviewHandler) ListByVehicle(c *gin.Context) {
	vehicleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q reqdto.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return
	}

	items, next, err := h.read.ListByVehicle(c.Request.Context(), vehicleID, q.Filters(), q.Cursor(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewList(items, next))
}

// render reloads the review so the response carries joined user and
// vehicle names.
func (h *ReviewHandler) render(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.read.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resdto.FromReviewView(view))
}
