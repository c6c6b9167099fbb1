package sweeper

import (
	"context"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type BoostRepository interface {
	ExpireDue(ctx context.Context, now time.Time) ([]domain.Boost, error)
	HasActive(ctx context.Context, profileID int64) (bool, error)
}

type ProfileRepository interface {
	SetFeatured(ctx context.Context, profileID int64, featured bool) error
}

type StoryRepository interface {
	GetExpired(ctx context.Context, now time.Time, limit int32) ([]domain.Story, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// MediaStorage удаляет медиа-файлы историй из объектного хранилища.
type MediaStorage interface {
	DeleteByURL(ctx context.Context, mediaURL string) error
}
