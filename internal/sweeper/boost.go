// Package sweeper содержит периодические реконсиляции: снятие просроченных
// бустов и удаление истекших историй.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// BoostSweeper переводит просроченные бусты в expired и пересчитывает
// производный флаг featured у затронутых профилей.
type BoostSweeper struct {
	uow uow.UOW
	l   *logrus.Entry
}

func NewBoostSweeper(u uow.UOW, l *logrus.Logger) *BoostSweeper {
	return &BoostSweeper{
		uow: u,
		l: l.WithFields(logrus.Fields{
			"component": "sweeper",
			"entity":    "boost",
		}),
	}
}

// Sweep обрабатывает все бусты с end_date < now. Перевод статуса и
// пересчет featured идут в одной транзакции: частично снятый буст с
// висящим featured зафиксирован быть не может. Повторный запуск (в том
// числе конкурентный) безопасен — условный UPDATE не зацепит уже
// обработанные бусты и вернет 0 строк.
//
// Пересчет featured выполняется после батч-обновления статусов: если у
// профиля в этом же проходе истекло несколько бустов, флаг снимется ровно
// один раз.
func (s *BoostSweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	var expiredCount int

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		boostRepo, boostRepoErr := uow.GetAs[BoostRepository](tx, uow.RepositoryName(repoargs.BoostRepoName))
		if boostRepoErr != nil {
			return boostRepoErr //nolint:wrapcheck
		}
		profileRepo, profileRepoErr :=
			uow.GetAs[ProfileRepository](tx, uow.RepositoryName(repoargs.ProfileRepoName))
		if profileRepoErr != nil {
			return profileRepoErr //nolint:wrapcheck
		}

		expired, expireErr := boostRepo.ExpireDue(c, now)
		if expireErr != nil {
			return expireErr //nolint:wrapcheck
		}
		expiredCount = len(expired)

		for _, profileID := range distinctProfiles(expired) {
			hasActive, hasActiveErr := boostRepo.HasActive(c, profileID)
			if hasActiveErr != nil {
				return hasActiveErr //nolint:wrapcheck
			}
			if hasActive {
				continue
			}
			if setErr := profileRepo.SetFeatured(c, profileID, false); setErr != nil {
				return setErr //nolint:wrapcheck
			}
		}
		return nil
	})

	if txErr != nil {
		return 0, fmt.Errorf("boost sweep: %w", txErr)
	}

	if expiredCount > 0 {
		s.l.WithField("expired", expiredCount).Info("boosts expired")
	}
	return expiredCount, nil
}

// distinctProfiles возвращает профили в порядке первого вхождения.
func distinctProfiles(expired []domain.Boost) []int64 {
	seen := make(map[int64]struct{}, len(expired))
	profiles := make([]int64, 0, len(expired))
	for _, boost := range expired {
		if _, ok := seen[boost.ProfileID]; ok {
			continue
		}
		seen[boost.ProfileID] = struct{}{}
		profiles = append(profiles, boost.ProfileID)
	}
	return profiles
}
