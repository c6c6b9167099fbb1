package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// applyDelta — единственный примитив, которому разрешено читать и менять
// баланс. Сдвиг баланса и запись в журнал выполняются на одной открытой
// транзакции tx, поэтому либо происходят обе, либо ни одной.
func applyDelta(
	ctx context.Context,
	tx uow.TX,
	args repoargs.TransactionCreate,
) (*domain.Transaction, *domain.Account, error) {
	accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, nil, accountRepoErr //nolint:wrapcheck
	}
	transactionRepo, transactionRepoErr :=
		uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
	if transactionRepoErr != nil {
		return nil, nil, transactionRepoErr //nolint:wrapcheck
	}

	account, adjustErr := accountRepo.AdjustBalance(ctx, repoargs.AdjustBalance{
		OwnerID: args.OwnerID,
		Delta:   args.Amount,
	})
	if adjustErr != nil {
		return nil, nil, adjustErr //nolint:wrapcheck
	}

	transaction, createErr := transactionRepo.Create(ctx, args)
	if createErr != nil {
		return nil, nil, fmt.Errorf("logging balance delta: %w", createErr)
	}
	return transaction, account, nil
}
