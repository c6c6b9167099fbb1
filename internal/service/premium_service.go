package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// PremiumActivationService обменивает кредиты на услугу из каталога.
type PremiumActivationService struct {
	uow       uow.UOW
	grantRepo GrantRepository
	ledger    *LedgerService
}

func NewPremiumActivationService(u uow.UOW, ledger *LedgerService) (*PremiumActivationService, error) {
	grantRepo, grantRepoErr := uow.GetRepositoryAs[GrantRepository](u, uow.RepositoryName(repoargs.GrantRepoName))
	if grantRepoErr != nil {
		return nil, grantRepoErr //nolint:wrapcheck
	}
	return &PremiumActivationService{
		uow:       u,
		grantRepo: grantRepo,
		ledger:    ledger,
	}, nil
}

// Activate списывает стоимость услуги и создает грант в одной транзакции.
// Состояние "кредиты списаны, грант не создан" не может быть зафиксировано:
// любой сбой внутри юнита откатывает и списание.
//
// Возможные ошибки: domain.ErrRecordNotFound (нет такой услуги),
// domain.ErrServiceNotForSale (услуга снята с продажи),
// domain.ErrInsufficientBalance.
func (s *PremiumActivationService) Activate(
	ctx context.Context,
	ownerID, profileID, serviceID int64,
) (*domain.ServiceGrant, error) {
	var grant *domain.ServiceGrant
	var account *domain.Account
	var transaction *domain.Transaction

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		catalogRepo, catalogRepoErr := uow.GetAs[CatalogRepository](tx, uow.RepositoryName(repoargs.CatalogRepoName))
		if catalogRepoErr != nil {
			return catalogRepoErr //nolint:wrapcheck
		}

		premiumService, findErr := catalogRepo.FindByID(c, serviceID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if !premiumService.IsActive {
			return fmt.Errorf("activating service %d: %w", serviceID, domain.ErrServiceNotForSale)
		}

		var deltaErr error
		transaction, account, deltaErr = applyDelta(c, tx, repoargs.TransactionCreate{
			OwnerID:     ownerID,
			Amount:      -premiumService.CreditCost,
			Type:        domain.TransactionPremiumService,
			Description: fmt.Sprintf("premium service activation: %s", premiumService.Name),
			ReferenceID: strconv.FormatInt(serviceID, 10),
		})
		if deltaErr != nil {
			return deltaErr
		}

		grantRepo, grantRepoErr := uow.GetAs[GrantRepository](tx, uow.RepositoryName(repoargs.GrantRepoName))
		if grantRepoErr != nil {
			return grantRepoErr //nolint:wrapcheck
		}

		var endDate *time.Time
		if premiumService.DurationDays != nil {
			ed := time.Now().UTC().AddDate(0, 0, int(*premiumService.DurationDays))
			endDate = &ed
		}

		var grantErr error
		grant, grantErr = grantRepo.Create(c, repoargs.GrantCreate{
			OwnerID:       ownerID,
			ProfileID:     profileID,
			ServiceID:     serviceID,
			TransactionID: transaction.ID,
			EndDate:       endDate,
		})
		return grantErr //nolint:wrapcheck
	})

	if txErr != nil {
		if isBusinessErr(txErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("activating service %d for profileID %d: %w", serviceID, profileID, txErr)
	}

	s.ledger.emitBalanceChanged(ctx, account, transaction)
	return grant, nil
}

// ActiveGrants возвращает действующие услуги профиля.
func (s *PremiumActivationService) ActiveGrants(ctx context.Context, profileID int64) ([]domain.ServiceGrant, error) {
	grants, err := s.grantRepo.GetActiveByProfileID(ctx, profileID, time.Now().UTC())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return grants, nil
}

// isBusinessErr отличает пользовательские ошибки от инфраструктурных,
// чтобы не заворачивать первые лишним контекстом.
func isBusinessErr(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound) ||
		errors.Is(err, domain.ErrServiceNotForSale) ||
		errors.Is(err, domain.ErrInsufficientBalance)
}
