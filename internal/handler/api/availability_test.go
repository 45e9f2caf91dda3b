//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coachwell/internal/handler/api"
	resdto "coachwell/internal/handler/dto/response"
	"coachwell/internal/pkg/errs"
	commonhttp "coachwell/tests/common/httptest"
	queriesmock "coachwell/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockAvl  *queriesmock.MockAvailabilityQueries
	handler  *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAvl = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockAvl)

	s.router.GET("/availability", s.handler.List)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestList() {
	s.Run("returns slots for the default window", func() {
		slots := []time.Time{
			time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 15, 15, 0, 0, 0, time.UTC),
		}
		s.mockAvl.EXPECT().
			ListAvailable(gomock.Any(), 0).
			Return(slots, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil, "")

		var resp resdto.AvailabilityResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Slots, 2)
		s.True(slots[0].Equal(resp.Slots[0].UTC()))
	})

	s.Run("forwards the days parameter", func() {
		s.mockAvl.EXPECT().
			ListAvailable(gomock.Any(), 3).
			Return([]time.Time{}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?days=3", nil, "")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("malformed days parameter returns 400", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?days=soon", nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid days parameter")
	})

	s.Run("query failure returns 500", func() {
		s.mockAvl.EXPECT().
			ListAvailable(gomock.Any(), 0).
			Return(nil, errs.New("backend down"))

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil, "")
		s.Equal(http.StatusInternalServerError, w.Code)
	})
}
