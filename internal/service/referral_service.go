package service

import (
	"context"
	"errors"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// ReferralService идемпотентно фиксирует регистрации по партнерским кодам.
type ReferralService struct {
	referralRepo ReferralRepository
}

func NewReferralService(u uow.UOW) (*ReferralService, error) {
	referralRepo, err := uow.GetRepositoryAs[ReferralRepository](u, uow.RepositoryName(repoargs.ReferralRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &ReferralService{referralRepo: referralRepo}, nil
}

// Track записывает реферала. Это побочный best-effort эффект регистрации:
// неизвестный или выключенный код — не ошибка, а created=false. Повтор с
// теми же аргументами упирается в уникальный индекс пары и тоже дает
// created=false; гонку конкурентных повторов разрешает БД.
func (s *ReferralService) Track(ctx context.Context, affiliateCode string, referredUserID int64) (bool, error) {
	affiliate, findErr := s.referralRepo.FindAffiliateByCode(ctx, affiliateCode)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, findErr //nolint:wrapcheck
	}
	if !affiliate.IsActive {
		return false, nil
	}

	_, createErr := s.referralRepo.Create(ctx, repoargs.ReferralCreate{
		AffiliateID:    affiliate.ID,
		ReferredUserID: referredUserID,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			return false, nil
		}
		return false, createErr //nolint:wrapcheck
	}
	return true, nil
}
