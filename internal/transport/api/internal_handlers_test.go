package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/logger"
	"github.com/fsdevblog/vitrine/internal/transport/api/middlewares"
	"github.com/fsdevblog/vitrine/internal/transport/api/mocks"
	"github.com/fsdevblog/vitrine/internal/transport/api/testutils"
)

const testSchedulerToken = "scheduler-token"

// InternalHandlersTestSuite покрывает маршруты планировщика и бэкенда
// основного приложения: трекинг рефералов, подтверждение покупок и свипы.
type InternalHandlersTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	router              *gin.Engine
	mockLedgerService   *mocks.MockLedgerServicer
	mockReferralService *mocks.MockReferralServicer
	mockBoostSweeper    *mocks.MockSweeper
	mockStorySweeper    *mocks.MockSweeper
}

func TestInternalHandlersSuite(t *testing.T) {
	suite.Run(t, new(InternalHandlersTestSuite))
}

func (s *InternalHandlersTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	s.mockLedgerService = mocks.NewMockLedgerServicer(s.mockCtrl)
	s.mockReferralService = mocks.NewMockReferralServicer(s.mockCtrl)
	s.mockBoostSweeper = mocks.NewMockSweeper(s.mockCtrl)
	s.mockStorySweeper = mocks.NewMockSweeper(s.mockCtrl)

	s.router = New(RouterArgs{
		Logger:          logger.New(io.Discard),
		LedgerService:   s.mockLedgerService,
		ReferralService: s.mockReferralService,
		BoostSweeper:    s.mockBoostSweeper,
		StorySweeper:    s.mockStorySweeper,
		JWTSecretKey:    []byte("super secret key"),
		SchedulerToken:  testSchedulerToken,
	})
}

func (s *InternalHandlersTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *InternalHandlersTestSuite) makeInternalRequest(url, payload, token string) *http.Response {
	var body io.Reader
	if payload != "" {
		body = bytes.NewReader([]byte(payload))
	}
	args := testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   body,
	}
	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json"),
	}
	if token != "" {
		reqOpts = append(reqOpts, testutils.WithHeader(middlewares.SchedulerTokenHeader, token))
	}
	res, err := testutils.MakeRequest(args, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *InternalHandlersTestSuite) TestSchedulerAuth() {
	cases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "wrong token", token: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "missing token", token: "", wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeInternalRequest(RouteGroup+SweepBoostsRoute, "", t.token)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *InternalHandlersTestSuite) TestTrackReferral() {
	s.mockReferralService.EXPECT().
		Track(gomock.Any(), "PARTNER7", int64(500)).
		Return(true, nil)
	s.mockReferralService.EXPECT().
		Track(gomock.Any(), "NOPE", int64(500)).
		Return(false, nil)
	s.mockReferralService.EXPECT().
		Track(gomock.Any(), "PARTNER7", int64(501)).
		Return(false, errors.New("connection reset"))

	cases := []struct {
		name        string
		payload     string
		wantStatus  int
		wantSuccess bool
	}{
		{
			name:        "recorded",
			payload:     `{"affiliateCode":"PARTNER7","newUserId":500}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		}, {
			name:       "unknown code is not an error",
			payload:    `{"affiliateCode":"NOPE","newUserId":500}`,
			wantStatus: http.StatusOK,
		}, {
			name:       "storage failure",
			payload:    `{"affiliateCode":"PARTNER7","newUserId":501}`,
			wantStatus: http.StatusInternalServerError,
		}, {
			name:       "missing code",
			payload:    `{"newUserId":500}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeInternalRequest(RouteGroup+TrackReferralRoute, t.payload, testSchedulerToken)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().Equal(t.wantStatus, res.StatusCode)
			if t.wantStatus != http.StatusOK {
				return
			}

			var body TrackReferralResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.Equal(t.wantSuccess, body.Success)
		})
	}
}

func (s *InternalHandlersTestSuite) TestConfirmPurchase() {
	transaction := &domain.Transaction{
		ID: 42, OwnerID: 123, Amount: 100, Type: domain.TransactionPurchase, ReferenceID: "pay-1",
	}

	// повторное подтверждение отвечает той же транзакцией.
	s.mockLedgerService.EXPECT().
		ConfirmPurchase(gomock.Any(), int64(123), int64(100), "pay-1").
		Return(transaction, nil).Times(2)

	for _, name := range []string{"first confirmation", "repeated confirmation"} {
		s.Run(name, func() {
			res := s.makeInternalRequest(
				RouteGroup+ConfirmRoute,
				`{"ownerId":123,"credits":100,"paymentRef":"pay-1"}`,
				testSchedulerToken,
			)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().Equal(http.StatusOK, res.StatusCode)

			var body ConfirmPurchaseResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.True(body.Success)
			s.Equal(transaction.ID, body.TransactionID)
		})
	}

	s.Run("invalid credits", func() {
		res := s.makeInternalRequest(
			RouteGroup+ConfirmRoute,
			`{"ownerId":123,"credits":0,"paymentRef":"pay-1"}`,
			testSchedulerToken,
		)
		defer func() {
			closeErr := res.Body.Close()
			s.Require().NoError(closeErr)
		}()
		s.Equal(http.StatusBadRequest, res.StatusCode)
	})
}

func (s *InternalHandlersTestSuite) TestSweeps() {
	s.mockBoostSweeper.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(3, nil)
	s.mockStorySweeper.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset"))

	s.Run("boosts", func() {
		res := s.makeInternalRequest(RouteGroup+SweepBoostsRoute, "", testSchedulerToken)
		defer func() {
			closeErr := res.Body.Close()
			s.Require().NoError(closeErr)
		}()

		s.Require().Equal(http.StatusOK, res.StatusCode)

		var body SweepResponse
		s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
		s.Equal(3, body.Processed)
	})

	s.Run("stories failure", func() {
		res := s.makeInternalRequest(RouteGroup+SweepStoriesRoute, "", testSchedulerToken)
		defer func() {
			closeErr := res.Body.Close()
			s.Require().NoError(closeErr)
		}()
		s.Equal(http.StatusInternalServerError, res.StatusCode)
	})
}
