package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/internal/sweeper/mocks"
	"github.com/fsdevblog/vitrine/pkg/uow"
	uowmocks "github.com/fsdevblog/vitrine/pkg/uow/mocks"
)

type StorySweeperTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockStoryRepo *mocks.MockStoryRepository
	mockMedia     *mocks.MockMediaStorage
	sweeper       *StorySweeper
}

func TestStorySweeperSuite(t *testing.T) {
	suite.Run(t, new(StorySweeperTestSuite))
}

func (s *StorySweeperTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockStoryRepo = mocks.NewMockStoryRepository(s.mockCtrl)
	s.mockMedia = mocks.NewMockMediaStorage(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.StoryRepoName)).
		Return(s.mockStoryRepo, nil).AnyTimes()

	var err error
	s.sweeper, err = NewStorySweeper(s.mockUOW, s.mockMedia, newTestLogger())
	s.Require().NoError(err)
}

func (s *StorySweeperTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *StorySweeperTestSuite) TestSweep_NothingExpired() {
	now := time.Now().UTC()

	s.mockStoryRepo.EXPECT().
		GetExpired(gomock.Any(), now, defaultStoryBatchLimit).
		Return(nil, nil)

	count, err := s.sweeper.Sweep(context.Background(), now)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *StorySweeperTestSuite) TestSweep_DeletesMediaAndMetadata() {
	now := time.Now().UTC()
	stories := []domain.Story{
		{ID: 1, ProfileID: 10, MediaURL: "https://cdn.example.com/bucket/stories/1.jpg"},
		{ID: 2, ProfileID: 20, MediaURL: "https://cdn.example.com/bucket/stories/2.jpg"},
	}

	s.mockStoryRepo.EXPECT().
		GetExpired(gomock.Any(), now, defaultStoryBatchLimit).
		Return(stories, nil)
	s.mockMedia.EXPECT().DeleteByURL(gomock.Any(), stories[0].MediaURL).Return(nil)
	s.mockMedia.EXPECT().DeleteByURL(gomock.Any(), stories[1].MediaURL).Return(nil)
	s.mockStoryRepo.EXPECT().
		DeleteByIDs(gomock.Any(), []int64{1, 2}).
		Return(int64(2), nil)

	count, err := s.sweeper.Sweep(context.Background(), now)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Сбой удаления файла не блокирует удаление метаданных.
func (s *StorySweeperTestSuite) TestSweep_MediaFailureTolerated() {
	now := time.Now().UTC()
	stories := []domain.Story{
		{ID: 1, ProfileID: 10, MediaURL: "https://cdn.example.com/bucket/stories/1.jpg"},
		{ID: 2, ProfileID: 20, MediaURL: ""},
	}

	s.mockStoryRepo.EXPECT().
		GetExpired(gomock.Any(), now, defaultStoryBatchLimit).
		Return(stories, nil)
	// история без медиа хранилище не дергает.
	s.mockMedia.EXPECT().
		DeleteByURL(gomock.Any(), stories[0].MediaURL).
		Return(errors.New("access denied"))
	s.mockStoryRepo.EXPECT().
		DeleteByIDs(gomock.Any(), []int64{1, 2}).
		Return(int64(2), nil)

	count, err := s.sweeper.Sweep(context.Background(), now)
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Без настроенного хранилища удаляются только метаданные.
func (s *StorySweeperTestSuite) TestSweep_NoMediaStorage() {
	now := time.Now().UTC()

	sweeper, err := NewStorySweeper(s.mockUOW, nil, newTestLogger())
	s.Require().NoError(err)

	s.mockStoryRepo.EXPECT().
		GetExpired(gomock.Any(), now, defaultStoryBatchLimit).
		Return([]domain.Story{{ID: 1, MediaURL: "https://cdn.example.com/bucket/stories/1.jpg"}}, nil)
	s.mockStoryRepo.EXPECT().
		DeleteByIDs(gomock.Any(), []int64{1}).
		Return(int64(1), nil)

	count, sweepErr := sweeper.Sweep(context.Background(), now)
	s.Require().NoError(sweepErr)
	s.Equal(1, count)
}
