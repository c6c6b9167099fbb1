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
	"github.com/fsdevblog/vitrine/internal/transport/api/mocks"
	"github.com/fsdevblog/vitrine/internal/transport/api/testutils"
	"github.com/fsdevblog/vitrine/internal/transport/api/tokens"
)

type PremiumHandlerTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	router             *gin.Engine
	mockPremiumService *mocks.MockPremiumServicer
	jwtSecret          []byte
}

func TestPremiumHandlerSuite(t *testing.T) {
	suite.Run(t, new(PremiumHandlerTestSuite))
}

func (s *PremiumHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	s.mockPremiumService = mocks.NewMockPremiumServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		PremiumService: s.mockPremiumService,
		JWTSecretKey:   s.jwtSecret,
		SchedulerToken: "scheduler-token",
	})
}

func (s *PremiumHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PremiumHandlerTestSuite) TestActivate() {
	var userID int64 = 123

	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	endDate := time.Now().UTC().AddDate(0, 0, 7)
	grant := &domain.ServiceGrant{
		ID: 3, OwnerID: userID, ProfileID: 55, ServiceID: 9, TransactionID: 11, EndDate: &endDate,
	}

	// Моки: по одной активации на исход.
	s.mockPremiumService.EXPECT().
		Activate(gomock.Any(), userID, int64(55), int64(9)).
		Return(grant, nil)
	s.mockPremiumService.EXPECT().
		Activate(gomock.Any(), userID, int64(55), int64(404)).
		Return(nil, domain.ErrRecordNotFound)
	s.mockPremiumService.EXPECT().
		Activate(gomock.Any(), userID, int64(55), int64(10)).
		Return(nil, domain.ErrServiceNotForSale)
	s.mockPremiumService.EXPECT().
		Activate(gomock.Any(), userID, int64(55), int64(11)).
		Return(nil, domain.ErrInsufficientBalance)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    `{"profile_id":55,"service_id":9}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "unknown service",
			payload:    `{"profile_id":55,"service_id":404}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "service not for sale",
			payload:    `{"profile_id":55,"service_id":10}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "insufficient balance",
			payload:    `{"profile_id":55,"service_id":11}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "missing params",
			payload:    `{"profile_id":55}`,
			jwtToken:   jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "not authorized",
			payload:    `{"profile_id":55,"service_id":9}`,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + ActivateRoute,
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

			var body ActivateResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.True(body.Success)
			s.Equal(grant.ID, body.Grant.ID)
			s.Equal(grant.TransactionID, body.Grant.TransactionID)
			s.NotEmpty(body.Grant.EndDate)
		})
	}
}

func (s *PremiumHandlerTestSuite) TestGrants() {
	var userID int64 = 123

	jwtToken, jwtErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	s.mockPremiumService.EXPECT().
		ActiveGrants(gomock.Any(), int64(55)).
		Return([]domain.ServiceGrant{{ID: 3, ProfileID: 55, ServiceID: 9}}, nil)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "all ok", url: RouteGroup + GrantsRoute + "?profileId=55", wantStatus: http.StatusOK},
		{name: "missing profileId", url: RouteGroup + GrantsRoute, wantStatus: http.StatusBadRequest},
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

			var body []GrantResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.Require().Len(body, 1)
			s.Equal(int64(9), body[0].ServiceID)
		})
	}
}
