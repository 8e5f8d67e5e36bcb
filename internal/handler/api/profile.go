package api

import (
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const pictureFormField = "picture"

type ProfileHandler struct {
	cmds commands.ProfileCommands
	q    queries.UserQueries
}

func NewProfileHandler(cmds commands.ProfileCommands, q queries.UserQueries) *ProfileHandler {
	return &ProfileHandler{cmds: cmds, q: q}
}

// @Summary Get profile
// @Description Profile details with booking summary and recent reviews
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProfileResponse
// @Failure 401 {object} httperr.Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	summary, err := h.q.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfileSummary(summary))
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProfileRequest true "Profile"
// @Success 200 {object} resdto.ProfileResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	ctx := c.Request.Context()
	if err := h.cmds.Update(ctx, actor.ID, req.ToInput()); err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.q.GetProfile(ctx, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfileSummary(summary))
}

// @Summary Upload profile picture
// @Description JPEG, PNG or WebP, up to 10 MB and 4000x4000 pixels. The profile must exist.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param picture formData file true "Picture file"
// @Success 200 {object} resdto.ImageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /profile/picture [post]
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	img, file, ok := formImage(c, pictureFormField)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.cmds.UploadPicture(c.Request.Context(), actor.ID, img)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ImageResponse{ImageURL: url})
}
