package api

import (
	"io"
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const imageFormField = "image"

type AdminHandler struct {
	categories commands.CategoryCommands
	vehicles   commands.VehicleCommands
	q          queries.VehicleQueries
}

func NewAdminHandler(categories commands.CategoryCommands, vehicles commands.VehicleCommands, q queries.VehicleQueries) *AdminHandler {
	return &AdminHandler{categories: categories, vehicles: vehicles, q: q}
}

// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CategoryRequest true "Category"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req reqdto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	id, err := h.categories.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Create vehicle
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VehicleRequest true "Vehicle"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/vehicles [post]
func (h *AdminHandler) CreateVehicle(c *gin.Context) {
	var req reqdto.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	id, err := h.vehicles.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/vehicles/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update vehicle
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.VehicleRequest true "Vehicle"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/vehicles/{id} [put]
func (h *AdminHandler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	if err := h.vehicles.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		respondError(c, err)
		return
	}
	h.respondVehicle(c, id)
}

// @Summary Toggle vehicle availability
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.AvailabilityRequest true "Availability"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/vehicles/{id}/availability [patch]
func (h *AdminHandler) SetAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	if err := h.vehicles.SetAvailability(c.Request.Context(), id, *req.IsAvailable); err != nil {
		respondError(c, err)
		return
	}
	h.respondVehicle(c, id)
}

// @Summary Upload vehicle image
// @Description JPEG or PNG, up to 10 MB and 4000x4000 pixels
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param image formData file true "Image file"
// @Success 200 {object} resdto.ImageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /admin/vehicles/{id}/image [post]
func (h *AdminHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	img, file, ok := formImage(c, imageFormField)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.vehicles.UploadImage(c.Request.Context(), id, img)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ImageResponse{ImageURL: url})
}

func (h *AdminHandler) respondVehicle(c *gin.Context, id uuid.UUID) {
	detail, err := h.q.GetDetail(c.Request.Context(), id, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVehicleView(detail.Vehicle))
}

// formImage opens a multipart file and sniffs its type. The caller closes
// the returned file.
func formImage(c *gin.Context, field string) (commands.ImageUpload, io.Closer, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		_ = c.Error(err)
		respondError(c, commands.ErrImageRequired)
		return commands.ImageUpload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, err, "Invalid image upload")
		return commands.ImageUpload{}, nil, false
	}
	contentType, err := sniffContentType(file)
	if err != nil {
		file.Close()
		badRequest(c, err, "Invalid image upload")
		return commands.ImageUpload{}, nil, false
	}
	return commands.ImageUpload{Body: file, Size: header.Size, ContentType: contentType}, file, true
}

func respondUploadError(c *gin.Context, err error) {
	if errs.Is(err, commands.ErrImageUpload) {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Image storage unavailable", nil)
		return
	}
	respondError(c, err)
}

// sniffContentType reads the leading bytes and rewinds the file.
func sniffContentType(f io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errs.Is(err, io.ErrUnexpectedEOF) && !errs.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
