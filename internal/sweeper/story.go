package sweeper

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

const defaultStoryBatchLimit int32 = 500

// StorySweeper удаляет истории с истекшим сроком жизни вместе с медиа из
// объектного хранилища.
type StorySweeper struct {
	storyRepo  StoryRepository
	media      MediaStorage
	l          *logrus.Entry
	batchLimit int32
}

func NewStorySweeper(u uow.UOW, media MediaStorage, l *logrus.Logger) (*StorySweeper, error) {
	storyRepo, err := uow.GetRepositoryAs[StoryRepository](u, uow.RepositoryName(repoargs.StoryRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &StorySweeper{
		storyRepo: storyRepo,
		media:     media,
		l: l.WithFields(logrus.Fields{
			"component": "sweeper",
			"entity":    "story",
		}),
		batchLimit: defaultStoryBatchLimit,
	}, nil
}

// Sweep удаляет истории с expires_at < now. Удаление медиа — best-effort:
// повисший blob меньшее зло, чем истекшая история в выдаче, поэтому сбой
// удаления файла логируется и не блокирует удаление метаданных. Повторный
// запуск безопасен — удаленные строки не попадают под выборку.
func (s *StorySweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	stories, getErr := s.storyRepo.GetExpired(ctx, now, s.batchLimit)
	if getErr != nil {
		return 0, errors.Wrap(getErr, "story sweep")
	}
	if len(stories) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(stories))
	for _, story := range stories {
		ids = append(ids, story.ID)
		if s.media == nil || story.MediaURL == "" {
			continue
		}
		if delErr := s.media.DeleteByURL(ctx, story.MediaURL); delErr != nil {
			s.l.WithError(delErr).
				WithField("storyID", story.ID).
				WithField("mediaURL", story.MediaURL).
				Warn("failed to delete story media, metadata will be removed anyway")
		}
	}

	deleted, deleteErr := s.storyRepo.DeleteByIDs(ctx, ids)
	if deleteErr != nil {
		return 0, errors.Wrap(deleteErr, "story sweep")
	}

	s.l.WithField("deleted", deleted).Info("expired stories removed")
	return int(deleted), nil
}
