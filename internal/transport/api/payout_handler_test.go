package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/logger"
	"github.com/fsdevblog/vitrine/internal/service"
	"github.com/fsdevblog/vitrine/internal/transport/api/mocks"
	"github.com/fsdevblog/vitrine/internal/transport/api/testutils"
	"github.com/fsdevblog/vitrine/internal/transport/api/tokens"
)

type PayoutHandlerTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	router            *gin.Engine
	mockPayoutService *mocks.MockPayoutServicer
	jwtSecret         []byte
}

func TestPayoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(PayoutHandlerTestSuite))
}

func (s *PayoutHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	s.mockPayoutService = mocks.NewMockPayoutServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		PayoutService:  s.mockPayoutService,
		JWTSecretKey:   s.jwtSecret,
		SchedulerToken: "scheduler-token",
	})
}

func (s *PayoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PayoutHandlerTestSuite) TestCreate() {
	var userID int64 = 123
	var strangerID int64 = 999

	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)
	strangerJWTToken, strangerJWTErr := tokens.GenerateUserJWT(strangerID, time.Hour, s.jwtSecret)
	s.Require().NoError(strangerJWTErr)

	request := &domain.PayoutRequest{
		ID: 1, PublicID: "0b8c65a4-9a22-4a86-b6a9-3f8f77b3f0c1", ProfileID: 55,
		Amount: 15000, Status: domain.PayoutStatusPending,
	}

	s.mockPayoutService.EXPECT().
		RequestPayout(gomock.Any(), service.RequestPayoutArgs{
			ProfileID: 55, OwnerID: userID, Amount: 15000, PixKey: "user@bank.com",
		}).
		Return(request, nil)
	s.mockPayoutService.EXPECT().
		RequestPayout(gomock.Any(), service.RequestPayoutArgs{
			ProfileID: 55, OwnerID: strangerID, Amount: 15000, PixKey: "user@bank.com",
		}).
		Return(nil, domain.ErrForbidden)
	s.mockPayoutService.EXPECT().
		RequestPayout(gomock.Any(), service.RequestPayoutArgs{
			ProfileID: 55, OwnerID: userID, Amount: 100, PixKey: "user@bank.com",
		}).
		Return(nil, domain.ErrBelowMinimumPayout)
	s.mockPayoutService.EXPECT().
		RequestPayout(gomock.Any(), service.RequestPayoutArgs{
			ProfileID: 55, OwnerID: userID, Amount: 50000, PixKey: "user@bank.com",
		}).
		Return(nil, domain.ErrInsufficientEarnings)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    `{"profileId":55,"amount":15000,"pixKey":"user@bank.com"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "foreign profile",
			payload:    `{"profileId":55,"amount":15000,"pixKey":"user@bank.com"}`,
			jwtToken:   strangerJWTToken,
			wantStatus: http.StatusForbidden,
		}, {
			name:       "below minimum",
			payload:    `{"profileId":55,"amount":100,"pixKey":"user@bank.com"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "insufficient earnings",
			payload:    `{"profileId":55,"amount":50000,"pixKey":"user@bank.com"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "negative amount",
			payload:    `{"profileId":55,"amount":-5,"pixKey":"user@bank.com"}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "missing pix key",
			payload:    `{"profileId":55,"amount":15000}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "not authorized",
			payload:    `{"profileId":55,"amount":15000,"pixKey":"user@bank.com"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + PayoutsRoute,
				Body:   bytes.NewReader([]byte(t.payload)),
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithBearer(t.jwtToken))
			}
			reqOpts = append(reqOpts, testutils.WithHeader("Content-Type", "application/json"))
			res, err := testutils.MakeRequest(args, reqOpts...)
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().Equal(t.wantStatus, res.StatusCode)
			if t.wantStatus != http.StatusOK {
				return
			}

			var body PayoutResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.True(body.Success)
			s.Contains(body.Message, request.PublicID)
		})
	}
}

func (s *PayoutHandlerTestSuite) TestIndex() {
	var userID int64 = 123

	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	requests := []domain.PayoutRequest{
		{
			ID: 1, PublicID: "0b8c65a4-9a22-4a86-b6a9-3f8f77b3f0c1", CreatedAt: time.Now(),
			ProfileID: 55, Amount: 15000, Status: domain.PayoutStatusPending,
		},
	}
	s.mockPayoutService.EXPECT().
		Requests(gomock.Any(), userID, int64(55)).
		Return(requests, nil)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "all ok", url: RouteGroup + PayoutsRoute + "?profileId=55", wantStatus: http.StatusOK},
		{name: "missing profileId", url: RouteGroup + PayoutsRoute, wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    t.url,
			}, testutils.WithBearer(jwtToken))
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().Equal(t.wantStatus, res.StatusCode)
			if t.wantStatus != http.StatusOK {
				return
			}

			var body []PayoutRequestResponseItem
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.Require().Len(body, 1)
			s.Equal(requests[0].PublicID, body[0].PublicID)
			s.Equal(string(domain.PayoutStatusPending), body[0].Status)
		})
	}
}
