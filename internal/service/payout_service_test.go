package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/internal/service/mocks"
	"github.com/fsdevblog/vitrine/pkg/uow"
	uowmocks "github.com/fsdevblog/vitrine/pkg/uow/mocks"
)

const testMinimumPayout int64 = 10000

type PayoutServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockUOW          *uowmocks.MockUOW
	mockTX           *uowmocks.MockTX
	mockProfileRepo  *mocks.MockProfileRepository
	mockEarningsRepo *mocks.MockEarningsRepository
	mockPayoutRepo   *mocks.MockPayoutRepository
	service          *PayoutService
}

func TestPayoutServiceSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}

func (s *PayoutServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockProfileRepo = mocks.NewMockProfileRepository(s.mockCtrl)
	s.mockEarningsRepo = mocks.NewMockEarningsRepository(s.mockCtrl)
	s.mockPayoutRepo = mocks.NewMockPayoutRepository(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.ProfileRepoName)).
		Return(s.mockProfileRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.PayoutRepoName)).
		Return(s.mockPayoutRepo, nil).AnyTimes()

	var err error
	s.service, err = NewPayoutService(s.mockUOW, testMinimumPayout)
	s.Require().NoError(err)
}

func (s *PayoutServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PayoutServiceTestSuite) expectUnit() {
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		},
	)
}

func (s *PayoutServiceTestSuite) expectOwner(profileID, ownerID int64) {
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.ProfileRepoName)).
		Return(s.mockProfileRepo, nil)
	s.mockProfileRepo.EXPECT().
		OwnerID(gomock.Any(), profileID).
		Return(ownerID, nil)
}

// Успешная заявка: списание из pending_payout и создание заявки в одном
// юните; заявке назначается валидный публичный UUID.
func (s *PayoutServiceTestSuite) TestRequestPayout_Success() {
	args := RequestPayoutArgs{ProfileID: 55, OwnerID: 123, Amount: 15000, PixKey: "user@bank.com"}

	s.expectUnit()
	s.expectOwner(55, 123)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.EarningsRepoName)).
		Return(s.mockEarningsRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.PayoutRepoName)).
		Return(s.mockPayoutRepo, nil)

	s.mockEarningsRepo.EXPECT().
		Withdraw(gomock.Any(), int64(55), int64(15000)).
		Return(nil)
	s.mockPayoutRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, create repoargs.PayoutCreate) (*domain.PayoutRequest, error) {
			_, parseErr := uuid.Parse(create.PublicID)
			s.NoError(parseErr)
			s.Equal(int64(55), create.ProfileID)
			s.Equal(int64(15000), create.Amount)
			s.Equal("user@bank.com", create.PixKey)
			return &domain.PayoutRequest{
				ID: 1, PublicID: create.PublicID, ProfileID: 55,
				Amount: 15000, Status: domain.PayoutStatusPending,
			}, nil
		})

	request, err := s.service.RequestPayout(context.Background(), args)
	s.Require().NoError(err)
	s.Equal(domain.PayoutStatusPending, request.Status)
}

// Чужой профиль отклоняется до каких-либо списаний.
func (s *PayoutServiceTestSuite) TestRequestPayout_Forbidden() {
	s.expectUnit()
	s.expectOwner(55, 999)

	_, err := s.service.RequestPayout(context.Background(), RequestPayoutArgs{
		ProfileID: 55, OwnerID: 123, Amount: 15000, PixKey: "user@bank.com",
	})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *PayoutServiceTestSuite) TestRequestPayout_BelowMinimum() {
	s.expectUnit()
	s.expectOwner(55, 123)

	_, err := s.service.RequestPayout(context.Background(), RequestPayoutArgs{
		ProfileID: 55, OwnerID: 123, Amount: testMinimumPayout - 1, PixKey: "user@bank.com",
	})
	s.Require().ErrorIs(err, domain.ErrBelowMinimumPayout)
}

// Попытка вывести больше накопленного: заявка не создается.
func (s *PayoutServiceTestSuite) TestRequestPayout_InsufficientEarnings() {
	s.expectUnit()
	s.expectOwner(55, 123)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.EarningsRepoName)).
		Return(s.mockEarningsRepo, nil)
	s.mockEarningsRepo.EXPECT().
		Withdraw(gomock.Any(), int64(55), int64(50000)).
		Return(fmt.Errorf("withdrawing earnings: %w", domain.ErrInsufficientEarnings))

	_, err := s.service.RequestPayout(context.Background(), RequestPayoutArgs{
		ProfileID: 55, OwnerID: 123, Amount: 50000, PixKey: "user@bank.com",
	})
	s.Require().ErrorIs(err, domain.ErrInsufficientEarnings)
}

func (s *PayoutServiceTestSuite) TestRequests() {
	expected := []domain.PayoutRequest{{ID: 1, ProfileID: 55, Amount: 15000}}

	s.mockProfileRepo.EXPECT().OwnerID(gomock.Any(), int64(55)).Return(int64(123), nil)
	s.mockPayoutRepo.EXPECT().GetByProfileID(gomock.Any(), int64(55)).Return(expected, nil)

	requests, err := s.service.Requests(context.Background(), 123, 55)
	s.Require().NoError(err)
	s.Equal(expected, requests)
}

func (s *PayoutServiceTestSuite) TestRequests_Forbidden() {
	s.mockProfileRepo.EXPECT().OwnerID(gomock.Any(), int64(55)).Return(int64(999), nil)

	_, err := s.service.Requests(context.Background(), 123, 55)
	s.Require().ErrorIs(err, domain.ErrForbidden)
}
