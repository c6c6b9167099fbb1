package api

import (
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

type BalanceHandlerTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	router            *gin.Engine
	mockLedgerService *mocks.MockLedgerServicer
	jwtSecret         []byte
}

func TestBalanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}

func (s *BalanceHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	s.mockLedgerService = mocks.NewMockLedgerServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(io.Discard),
		LedgerService:  s.mockLedgerService,
		JWTSecretKey:   s.jwtSecret,
		SchedulerToken: "scheduler-token",
	})
}

func (s *BalanceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BalanceHandlerTestSuite) userToken(userID int64) string {
	token, err := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func (s *BalanceHandlerTestSuite) TestIndex() {
	var userID int64 = 123
	var noAccountUserID int64 = 404

	s.mockLedgerService.EXPECT().
		GetAccount(gomock.Any(), userID).
		Return(&domain.Account{ID: 1, OwnerID: userID, Balance: 40, TotalSpent: 60}, nil)
	s.mockLedgerService.EXPECT().
		GetAccount(gomock.Any(), noAccountUserID).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{name: "all ok", jwtToken: s.userToken(userID), wantStatus: http.StatusOK},
		{name: "no account", jwtToken: s.userToken(noAccountUserID), wantStatus: http.StatusNotFound},
		{name: "not authorized", wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + BalanceRoute,
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithBearer(t.jwtToken))
			}
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

			var body BalanceResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.Equal(int64(40), body.Balance)
			s.Equal(int64(60), body.TotalSpent)
		})
	}
}

func (s *BalanceHandlerTestSuite) TestHistory() {
	var userID int64 = 123

	transactions := []domain.Transaction{
		{
			ID: 2, CreatedAt: time.Now(), OwnerID: userID, Amount: -30,
			Type: domain.TransactionPremiumService, Description: "premium service activation: destaque",
			ReferenceID: "9",
		},
		{
			ID: 1, CreatedAt: time.Now().Add(-time.Hour), OwnerID: userID, Amount: 100,
			Type: domain.TransactionPurchase, Description: "credit purchase", ReferenceID: "pay-1",
		},
	}
	s.mockLedgerService.EXPECT().History(gomock.Any(), userID).Return(transactions, nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + TransactionsRoute,
	}, testutils.WithBearer(s.userToken(userID)))
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body []TransactionResponseItem
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Require().Len(body, 2)
	s.Equal(int64(-30), body[0].Amount)
	s.Equal(string(domain.TransactionPremiumService), body[0].Type)
	s.Equal(int64(100), body[1].Amount)
}
