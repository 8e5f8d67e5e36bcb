//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/common/testutil"
	commandsmock "vehicle-rental/tests/mock/commands"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	ctrl     *gomock.Controller
	commands *commandsmock.MockReviewCommands
	queries  *queriesmock.MockReviewQueries
	actor    shared.Actor
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockReviewCommands(s.ctrl)
	s.queries = queriesmock.NewMockReviewQueries(s.ctrl)
	s.actor = shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	h := api.NewReviewHandler(s.commands, s.queries)
	auth := fakeAuth(s.actor.ID, s.actor.Role)
	s.router = gin.New()
	s.router.GET("/vehicles/:id/reviews", h.ListByVehicle)
	s.router.POST("/vehicles/:id/reviews", auth, h.Create)
	s.router.PUT("/reviews/:id", auth, h.Update)
	s.router.DELETE("/reviews/:id", auth, h.Delete)
}

func (s *ReviewHandlerTestSuite) TestCreate() {
	vehicleID := uuid.New()
	path := "/vehicles/" + vehicleID.String() + "/reviews"
	body := builder.NewReviewBuilder().BuildCreateRequestDTO()
	view := builder.NewReviewBuilder().WithVehicleID(vehicleID).BuildViewQuery()

	s.Run("created review is read back", func() {
		s.commands.EXPECT().Create(gomock.Any(), vehicleID, body.ToInput(), s.actor.ID).Return(view.ID, nil)
		s.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, body, bearer)

		var got resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &got)
		s.Equal(view.ID, got.ID)
		s.Equal(view.Comment, got.Comment)
	})

	bindingCases := []struct {
		name string
		mut  testutil.Mutation
		ok   bool
	}{
		{name: "lowest rating", mut: testutil.With("rating", 1), ok: true},
		{name: "highest rating", mut: testutil.With("rating", 5), ok: true},
		{name: "rating zero", mut: testutil.With("rating", 0)},
		{name: "rating six", mut: testutil.With("rating", 6)},
		{name: "longest comment", mut: testutil.With("comment", strings.Repeat("a", 1000)), ok: true},
		{name: "comment one too long", mut: testutil.With("comment", strings.Repeat("a", 1001))},
		{name: "no rating", mut: testutil.With("rating", nil)},
		{name: "no comment", mut: testutil.With("comment", nil)},
	}
	for _, tc := range bindingCases {
		s.Run(tc.name, func() {
			if tc.ok {
				s.commands.EXPECT().Create(gomock.Any(), vehicleID, gomock.Any(), s.actor.ID).Return(view.ID, nil)
				s.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
			}

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, testutil.JSONMap(s.T(), body, tc.mut), bearer)

			if tc.ok {
				httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
				return
			}
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		})
	}

	s.Run("anonymous caller", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("vehicle id is not a uuid", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles/not-a-uuid/reviews", body, bearer)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid id")
	})

	failures := []struct {
		err    error
		status int
		msg    string
	}{
		{err: commands.ErrVehicleNotFound, status: http.StatusNotFound, msg: "vehicle not found"},
		{err: commands.ErrDuplicateReview, status: http.StatusConflict, msg: "already reviewed"},
		{err: errors.New("connection reset"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}
	for _, f := range failures {
		s.Run(f.msg, func() {
			s.commands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, f.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, body, bearer)
			httptest.AssertErrorResponse(s.T(), w, f.status, f.msg)
		})
	}
}

func (s *ReviewHandlerTestSuite) TestUpdate() {
	stored := builder.NewReviewBuilder().WithUserID(s.actor.ID).WithRating(4).BuildViewQuery()
	path := "/reviews/" + stored.ID.String()

	s.Run("full replacement", func() {
		body := builder.NewReviewBuilder().WithRating(2).WithComment("Clutch slipped").BuildUpdateRequestDTO()
		s.queries.EXPECT().GetByID(gomock.Any(), stored.ID).Return(stored, nil).Times(2)
		s.commands.EXPECT().Update(gomock.Any(), stored.ID, commands.ReviewInput{Rating: 2, Comment: "Clutch slipped"}, s.actor).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, body, bearer)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("omitted rating is kept", func() {
		edited := *stored
		edited.Comment = "Changed my mind"
		gomock.InOrder(
			s.queries.EXPECT().GetByID(gomock.Any(), stored.ID).Return(stored, nil),
			s.commands.EXPECT().Update(gomock.Any(), stored.ID, commands.ReviewInput{Rating: 4, Comment: "Changed my mind"}, s.actor).Return(nil),
			s.queries.EXPECT().GetByID(gomock.Any(), stored.ID).Return(&edited, nil),
		)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, map[string]any{"comment": "Changed my mind"}, bearer)

		var got resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal("Changed my mind", got.Comment)
		s.EqualValues(4, got.Rating)
	})

	s.Run("rating out of range never reaches the store", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, map[string]any{"rating": 9}, bearer)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("someone else's review", func() {
		s.queries.EXPECT().GetByID(gomock.Any(), stored.ID).Return(stored, nil)
		s.commands.EXPECT().Update(gomock.Any(), stored.ID, gomock.Any(), s.actor).Return(commands.ErrNotOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, map[string]any{"rating": 1}, bearer)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "permission")
	})

	s.Run("unknown review", func() {
		s.queries.EXPECT().GetByID(gomock.Any(), stored.ID).Return(nil, queries.ErrReviewNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, path, map[string]any{"rating": 1}, bearer)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "review not found")
	})
}

func (s *ReviewHandlerTestSuite) TestDelete() {
	id := uuid.New()
	path := "/reviews/" + id.String()

	s.Run("deleted", func() {
		s.commands.EXPECT().Delete(gomock.Any(), id, s.actor).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, bearer)
		s.Equal(http.StatusNoContent, w.Code)
		s.Zero(w.Body.Len())
	})

	s.Run("already gone", func() {
		s.commands.EXPECT().Delete(gomock.Any(), id, s.actor).Return(commands.ErrReviewNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, path, nil, bearer)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "review not found")
	})
}

func (s *ReviewHandlerTestSuite) TestListByVehicle() {
	vehicleID := uuid.New()
	path := "/vehicles/" + vehicleID.String() + "/reviews"
	page := []*queries.ReviewView{
		builder.NewReviewBuilder().WithVehicleID(vehicleID).BuildViewQuery(),
		builder.NewReviewBuilder().WithVehicleID(vehicleID).AsPoorRating().BuildViewQuery(),
	}

	s.Run("first page links the next one", func() {
		s.queries.EXPECT().ListByVehicle(gomock.Any(), vehicleID, queries.ReviewFilters{}, nil, 0).
			Return(page, &queries.Cursor{After: "next-page"}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")

		var got resdto.ReviewListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Len(got.Items, 2)
		s.Equal("next-page", got.NextCursor)
	})

	s.Run("query parameters reach the query", func() {
		minRating := 4
		s.queries.EXPECT().ListByVehicle(gomock.Any(), vehicleID, queries.ReviewFilters{MinRating: &minRating}, &queries.Cursor{After: "abc"}, 5).
			Return(page[:1], nil, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path+"?min_rating=4&after=abc&limit=5", nil, "")

		var got resdto.ReviewListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Len(got.Items, 1)
		s.Empty(got.NextCursor)
	})

	s.Run("tampered cursor", func() {
		s.queries.EXPECT().ListByVehicle(gomock.Any(), vehicleID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path+"?after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "invalid cursor")
	})
}
