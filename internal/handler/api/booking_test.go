//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/common/testutil"
	commandsmock "vehicle-rental/tests/mock/commands"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	loc          *time.Location
	actor        shared.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.loc = time.FixedZone("IST", 5*3600+1800)
	s.actor = shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries, s.loc)

	auth := fakeAuth(s.actor.ID, s.actor.Role)
	s.router.POST("/vehicles/:id/bookings", auth, h.Create)
	s.router.GET("/bookings", auth, h.ListMine)
	s.router.GET("/bookings/:id", auth, h.Get)
	s.router.GET("/bookings/:id/receipt", auth, h.Receipt)
	s.router.POST("/bookings/:id/cancel", auth, h.Cancel)
	s.router.POST("/admin/bookings/:id/status", auth, h.SetStatus)
	s.router.POST("/admin/bookings/:id/payment", auth, h.SetPayment)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) bookingView(vehicleID uuid.UUID) *queries.BookingView {
	start := time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:               uuid.New(),
		UserID:           s.actor.ID,
		VehicleID:        vehicleID,
		VehicleName:      "Honda Activa 6G",
		StartDate:        start,
		EndDate:          start.Add(5 * time.Hour),
		PickupLocation:   "MG Road",
		ReturnLocation:   "MG Road",
		TotalAmountCents: 25000,
		Status:           "pending",
		PaymentStatus:    "pending",
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/bookings"
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}

	reqBody := reqdto.CreateBookingRequest{
		StartDate:      "2030-03-01T10:00",
		EndDate:        "2030-03-01T15:00",
		PickupLocation: "MG Road",
		ReturnLocation: "MG Road",
	}
	view := s.bookingView(vehicleID)

	s.Run("success: 201 with Location and naive times read in the business zone", func() {
		expected := commands.CreateBookingInput{
			VehicleID:      vehicleID,
			StartDate:      time.Date(2030, 3, 1, 10, 0, 0, 0, s.loc),
			EndDate:        time.Date(2030, 3, 1, 15, 0, 0, 0, s.loc),
			PickupLocation: "MG Road",
			ReturnLocation: "MG Road",
		}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actor.ID, key).
			DoAndReturn(func(_ any, in commands.CreateBookingInput, _, _ uuid.UUID) (*commands.CreateBookingResult, error) {
				s.Equal(expected.VehicleID, in.VehicleID)
				s.True(expected.StartDate.Equal(in.StartDate))
				s.True(expected.EndDate.Equal(in.EndDate))
				return &commands.CreateBookingResult{Booking: view}, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers, bearer)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("/api/bookings/"+view.ID.String(), rec.Header().Get("Location"))
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: a replayed request is flagged", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actor.ID, key).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers, bearer)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Idempotent-Replayed": "true",
			"Location":            "/api/bookings/" + view.ID.String(),
		})
	})

	s.Run("error: idempotency key is required and must be a UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")

		bad := map[string]string{"Idempotency-Key": "not-a-uuid"}
		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, bad, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key must be a UUID")
	})

	s.Run("error: 400 on malformed input", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing start_date", mutate: testutil.With("start_date", nil)},
			{name: "unparseable start_date", mutate: testutil.With("start_date", "next tuesday")},
			{name: "unparseable end_date", mutate: testutil.With("end_date", "2030-13-45")},
			{name: "missing pickup_location", mutate: testutil.With("pickup_location", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.JSONMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, headers, bearer)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "vehicle not found", commandsError: commands.ErrVehicleNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "vehicle not found"},
			{name: "vehicle unavailable", commandsError: commands.ErrVehicleUnavailable, expectedStatus: http.StatusConflict, expectedMsg: "not available"},
			{name: "overlapping booking", commandsError: commands.ErrBookingOverlap, expectedStatus: http.StatusConflict, expectedMsg: "already booked"},
			{name: "key reused with another body", commandsError: commands.ErrIdempotencyMismatch, expectedStatus: http.StatusConflict, expectedMsg: "different request"},
			{name: "key still processing", commandsError: commands.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict, expectedMsg: "in progress"},
			{name: "database failure", commandsError: commands.ErrDatabaseFailed, expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	s.Run("success: passes the raw page through", func() {
		list := &queries.BookingList{
			Items: []*queries.BookingView{s.bookingView(uuid.New())},
			Stats: &queries.BookingStats{Total: 1, Pending: 1},
			Page:  queries.Page{Number: 2, Size: queries.BookingPageSize, TotalItems: 11, TotalPages: 2, HasPrev: true},
		}
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.actor.ID, "2").Return(list, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?page=2", nil, bearer)

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(int64(1), response.Stats.Pending)
		s.True(response.Page.HasPrev)
	})

	s.Run("error: 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *BookingHandlerTestSuite) TestGetAndReceipt() {
	view := s.bookingView(uuid.New())

	s.Run("success: booking detail", func() {
		s.mockQueries.EXPECT().GetForActor(gomock.Any(), view.ID, s.actor).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, bearer)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("250.00", response.TotalAmount)
	})

	s.Run("error: someone else's booking is not found", func() {
		s.mockQueries.EXPECT().GetForActor(gomock.Any(), view.ID, s.actor).Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})

	s.Run("success: receipt is served as a PDF attachment", func() {
		pdf := []byte("%PDF-1.3 fake")
		s.mockQueries.EXPECT().Receipt(gomock.Any(), view.ID, s.actor).Return(pdf, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String()+"/receipt", nil, bearer)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/pdf", rec.Header().Get("Content-Type"))
		s.Contains(rec.Header().Get("Content-Disposition"), "booking-"+view.ID.String()+".pdf")
		s.Equal(pdf, rec.Body.Bytes())
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	view := s.bookingView(uuid.New())
	url := "/bookings/" + view.ID.String() + "/cancel"

	s.Run("success: returns the cancelled booking", func() {
		cancelled := *view
		cancelled.Status = "cancelled"
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.actor).Return(&cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: 409 when the booking can no longer be cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.actor).Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *BookingHandlerTestSuite) TestStaffTransitions() {
	view := s.bookingView(uuid.New())

	s.Run("success: status change", func() {
		confirmed := *view
		confirmed.Status = "confirmed"
		s.mockCommands.EXPECT().TransitionStatus(gomock.Any(), view.ID, "confirmed", s.actor).Return(&confirmed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+view.ID.String()+"/status",
			map[string]string{"status": "confirmed"}, bearer)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 403 for customers", func() {
		s.mockCommands.EXPECT().SetPaymentStatus(gomock.Any(), view.ID, "paid", s.actor).Return(nil, commands.ErrStaffOnly).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+view.ID.String()+"/payment",
			map[string]string{"payment_status": "paid"}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "staff access required")
	})

	s.Run("error: 400 when the body is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+view.ID.String()+"/status", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}
