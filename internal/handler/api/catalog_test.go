//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/tests/common/httptest"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockVehicleQueries
	loc         *time.Location
	viewerID    uuid.UUID
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockVehicleQueries(s.mockCtrl)
	s.loc = time.FixedZone("IST", 5*3600+1800)
	s.viewerID = uuid.New()
	h := api.NewCatalogHandler(nil, s.mockQueries, nil, s.loc)

	s.router.GET("/vehicles", h.ListVehicles)
	s.router.GET("/vehicles/:id", fakeAuth(s.viewerID, user.RoleCustomer), h.GetVehicle)
	s.router.GET("/vehicles/:id/quote", h.Quote)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestListVehicles() {
	s.Run("success: query parameters become a filter", func() {
		bike := "bike"
		minPrice := int64(10000)
		seats := 2
		page := &queries.VehiclePage{
			Items: []*queries.VehicleListItem{{ID: uuid.New(), Name: "Honda Activa 6G", VehicleType: "bike", IsAvailable: true}},
			Page:  queries.Page{Number: 1, Size: queries.VehiclePageSize, TotalItems: 1, TotalPages: 1},
		}
		expected := queries.VehicleFilter{Type: &bike, MinPriceCents: &minPrice, MinSeats: &seats}
		s.mockQueries.EXPECT().List(gomock.Any(), expected, "3").Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles?type=bike&min_price=100&seats=2&page=3", nil, "")

		var response resdto.VehiclePageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(1, response.Page.TotalPages)
	})

	s.Run("error: 400 for a negative price", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles?max_price=-5", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "non-negative")
	})
}

func (s *CatalogHandlerTestSuite) TestGetVehicle() {
	id := uuid.New()
	detail := &queries.VehicleDetail{
		Vehicle: &queries.VehicleView{VehicleListItem: queries.VehicleListItem{ID: id, Name: "Maruti Swift"}},
	}

	s.Run("success: anonymous viewers get no personal review", func() {
		s.mockQueries.EXPECT().GetDetail(gomock.Any(), id, nil).Return(detail, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles/"+id.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: signed-in viewers are passed through", func() {
		s.mockQueries.EXPECT().GetDetail(gomock.Any(), id, &s.viewerID).Return(detail, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles/"+id.String(), nil, bearer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 for an unknown vehicle", func() {
		s.mockQueries.EXPECT().GetDetail(gomock.Any(), id, nil).Return(nil, queries.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "vehicle not found")
	})
}

func (s *CatalogHandlerTestSuite) TestQuote() {
	id := uuid.New()
	url := "/vehicles/" + id.String() + "/quote"

	s.Run("success: prices the interval", func() {
		start := time.Date(2030, 3, 1, 10, 0, 0, 0, s.loc)
		end := start.Add(5 * time.Hour)
		quote := &queries.PriceQuote{
			VehicleID:   id,
			StartDate:   start,
			EndDate:     end,
			Hours:       5,
			Tier:        "hourly",
			TotalAmount: money.FromCents(25000),
			Available:   true,
		}
		s.mockQueries.EXPECT().Quote(gomock.Any(), id, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, gotStart, gotEnd time.Time) (*queries.PriceQuote, error) {
				s.True(start.Equal(gotStart))
				s.True(end.Equal(gotEnd))
				return quote, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?start=2030-03-01T10:00&end=2030-03-01T15:00", nil, "")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("250.00", response.TotalAmount)
		s.Equal("hourly", response.Tier)
	})

	s.Run("error: 400 when bounds are missing or malformed", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?start=2030-03-01T10:00", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "start and end are required")

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?start=yesterday&end=2030-03-01T15:00", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
