package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// PayoutService переводит накопленный заработок профиля в заявку на
// выплату, ожидающую ручного одобрения.
type PayoutService struct {
	uow           uow.UOW
	profileRepo   ProfileRepository
	payoutRepo    PayoutRepository
	minimumPayout int64
}

func NewPayoutService(u uow.UOW, minimumPayout int64) (*PayoutService, error) {
	profileRepo, profileRepoErr :=
		uow.GetRepositoryAs[ProfileRepository](u, uow.RepositoryName(repoargs.ProfileRepoName))
	if profileRepoErr != nil {
		return nil, profileRepoErr //nolint:wrapcheck
	}
	payoutRepo, payoutRepoErr := uow.GetRepositoryAs[PayoutRepository](u, uow.RepositoryName(repoargs.PayoutRepoName))
	if payoutRepoErr != nil {
		return nil, payoutRepoErr //nolint:wrapcheck
	}
	return &PayoutService{
		uow:           u,
		profileRepo:   profileRepo,
		payoutRepo:    payoutRepo,
		minimumPayout: minimumPayout,
	}, nil
}

type RequestPayoutArgs struct {
	ProfileID int64
	OwnerID   int64
	Amount    int64
	PixKey    string
}

// RequestPayout атомарно уменьшает pending_payout профиля и создает заявку
// в статусе pending. Заявка и списание не наблюдаемы по отдельности.
//
// Возможные ошибки: domain.ErrForbidden (профиль чужой),
// domain.ErrBelowMinimumPayout, domain.ErrInsufficientEarnings,
// domain.ErrRecordNotFound.
func (s *PayoutService) RequestPayout(ctx context.Context, args RequestPayoutArgs) (*domain.PayoutRequest, error) {
	var request *domain.PayoutRequest

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		profileRepo, profileRepoErr :=
			uow.GetAs[ProfileRepository](tx, uow.RepositoryName(repoargs.ProfileRepoName))
		if profileRepoErr != nil {
			return profileRepoErr //nolint:wrapcheck
		}

		ownerID, ownerErr := profileRepo.OwnerID(c, args.ProfileID)
		if ownerErr != nil {
			return ownerErr //nolint:wrapcheck
		}
		if ownerID != args.OwnerID {
			return fmt.Errorf("payout for profileID %d: %w", args.ProfileID, domain.ErrForbidden)
		}

		if args.Amount < s.minimumPayout {
			return fmt.Errorf(
				"payout of %d below minimum %d: %w",
				args.Amount, s.minimumPayout, domain.ErrBelowMinimumPayout,
			)
		}

		earningsRepo, earningsRepoErr :=
			uow.GetAs[EarningsRepository](tx, uow.RepositoryName(repoargs.EarningsRepoName))
		if earningsRepoErr != nil {
			return earningsRepoErr //nolint:wrapcheck
		}
		if withdrawErr := earningsRepo.Withdraw(c, args.ProfileID, args.Amount); withdrawErr != nil {
			return withdrawErr //nolint:wrapcheck
		}

		payoutRepo, payoutRepoErr := uow.GetAs[PayoutRepository](tx, uow.RepositoryName(repoargs.PayoutRepoName))
		if payoutRepoErr != nil {
			return payoutRepoErr //nolint:wrapcheck
		}

		var createErr error
		request, createErr = payoutRepo.Create(c, repoargs.PayoutCreate{
			PublicID:  uuid.NewString(),
			ProfileID: args.ProfileID,
			Amount:    args.Amount,
			PixKey:    args.PixKey,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		if isPayoutBusinessErr(txErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("requesting payout for profileID %d: %w", args.ProfileID, txErr)
	}
	return request, nil
}

// Requests возвращает заявки профиля после проверки владельца.
func (s *PayoutService) Requests(ctx context.Context, ownerID, profileID int64) ([]domain.PayoutRequest, error) {
	profileOwnerID, ownerErr := s.profileRepo.OwnerID(ctx, profileID)
	if ownerErr != nil {
		return nil, ownerErr //nolint:wrapcheck
	}
	if profileOwnerID != ownerID {
		return nil, fmt.Errorf("payout requests of profileID %d: %w", profileID, domain.ErrForbidden)
	}

	requests, err := s.payoutRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return requests, nil
}

func isPayoutBusinessErr(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrBelowMinimumPayout) ||
		errors.Is(err, domain.ErrInsufficientEarnings)
}
