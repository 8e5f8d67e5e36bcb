//go:build unit

package api_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/tests/common/httptest"
	commandsmock "vehicle-rental/tests/mock/commands"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type AdminHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockCtrl   *gomock.Controller
	categories *commandsmock.MockCategoryCommands
	vehicles   *commandsmock.MockVehicleCommands
	queries    *queriesmock.MockVehicleQueries
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.categories = commandsmock.NewMockCategoryCommands(s.mockCtrl)
	s.vehicles = commandsmock.NewMockVehicleCommands(s.mockCtrl)
	s.queries = queriesmock.NewMockVehicleQueries(s.mockCtrl)
	h := api.NewAdminHandler(s.categories, s.vehicles, s.queries)

	s.router.POST("/admin/categories", h.CreateCategory)
	s.router.POST("/admin/vehicles", h.CreateVehicle)
	s.router.PATCH("/admin/vehicles/:id/availability", h.SetAvailability)
	s.router.POST("/admin/vehicles/:id/image", h.UploadImage)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) upload(id uuid.UUID, field string, content []byte) *nethttptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, "vehicle.png")
		s.Require().NoError(err)
		_, err = part.Write(content)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := nethttptest.NewRequest(http.MethodPost, "/admin/vehicles/"+id.String()+"/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := nethttptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AdminHandlerTestSuite) TestCreateVehicle() {
	body := map[string]any{
		"name":           "Royal Enfield Classic 350",
		"category_id":    uuid.New().String(),
		"vehicle_type":   "bike",
		"brand":          "Royal Enfield",
		"model":          "Classic 350",
		"year":           2023,
		"seats":          2,
		"price_per_day":  "1200.00",
		"price_per_hour": "150.00",
		"features":       "ABS, Disc brakes",
	}

	s.Run("success: 201 with Location", func() {
		id := uuid.New()
		s.vehicles.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.VehicleInput) (uuid.UUID, error) {
				s.Equal("Royal Enfield Classic 350", in.Name)
				s.True(in.IsAvailable)
				return id, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/vehicles", body, "")

		var response resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id, response.ID)
		s.Equal("/api/vehicles/"+id.String(), rec.Header().Get("Location"))
	})

	s.Run("error: 400 for an unknown vehicle type", func() {
		bad := map[string]any{}
		for k, v := range body {
			bad[k] = v
		}
		bad["vehicle_type"] = "spaceship"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/vehicles", bad, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 for a duplicate name", func() {
		s.vehicles.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, commands.ErrDuplicateVehicle).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/vehicles", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "vehicle name already exists")
	})
}

func (s *AdminHandlerTestSuite) TestCreateCategory() {
	s.Run("error: 409 for a duplicate category", func() {
		s.categories.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, commands.ErrDuplicateCategory).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/categories",
			map[string]any{"name": "Economy", "description": "Budget friendly"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "category already exists")
	})
}

func (s *AdminHandlerTestSuite) TestSetAvailability() {
	id := uuid.New()
	url := "/admin/vehicles/" + id.String() + "/availability"

	s.Run("success: returns the refreshed vehicle", func() {
		detail := &queries.VehicleDetail{
			Vehicle: &queries.VehicleView{VehicleListItem: queries.VehicleListItem{ID: id, IsAvailable: false}},
		}
		s.vehicles.EXPECT().SetAvailability(gomock.Any(), id, false).Return(nil).Times(1)
		s.queries.EXPECT().GetDetail(gomock.Any(), id, nil).Return(detail, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"is_available": false}, "")

		var response resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.IsAvailable)
	})

	s.Run("error: 400 when the flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AdminHandlerTestSuite) TestUploadImage() {
	id := uuid.New()

	s.Run("success: sniffed content type is forwarded", func() {
		s.vehicles.EXPECT().UploadImage(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, img commands.ImageUpload) (string, error) {
				s.Equal("image/png", img.ContentType)
				s.Equal(int64(len(pngHeader)), img.Size)
				data, err := io.ReadAll(img.Body)
				s.NoError(err)
				s.Equal(pngHeader, data)
				return "http://localhost:9000/vehicles/" + id.String() + ".png", nil
			}).Times(1)

		rec := s.upload(id, "image", pngHeader)

		var response resdto.ImageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Contains(response.ImageURL, id.String())
	})

	s.Run("error: 400 when no file is sent", func() {
		rec := s.upload(id, "", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "image file is required")
	})

	s.Run("error: 400 for a rejected type", func() {
		s.vehicles.EXPECT().UploadImage(gomock.Any(), id, gomock.Any()).Return("", commands.ErrImageType).Times(1)

		rec := s.upload(id, "image", []byte("plain text, not an image"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "JPEG or PNG")
	})

	s.Run("error: 400 when dimensions exceed the limit", func() {
		s.vehicles.EXPECT().UploadImage(gomock.Any(), id, gomock.Any()).Return("", commands.ErrImageDimensions).Times(1)

		rec := s.upload(id, "image", pngHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cannot exceed 4000x4000")
	})

	s.Run("error: 502 when storage fails", func() {
		s.vehicles.EXPECT().UploadImage(gomock.Any(), id, gomock.Any()).
			Return("", errs.Mark(errs.New("connection refused"), commands.ErrImageUpload)).Times(1)

		rec := s.upload(id, "image", pngHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Image storage unavailable")
	})
}
