package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/events"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// LedgerService владеет кредитным счетом и журналом транзакций.
type LedgerService struct {
	uow             uow.UOW
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	notifier        Notifier
	l               *logrus.Entry
}

func NewLedgerService(u uow.UOW, notifier Notifier, l *logrus.Logger) (*LedgerService, error) {
	accountRepo, accountRepoErr :=
		uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr //nolint:wrapcheck
	}
	transactionRepo, transactionRepoErr :=
		uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transactionRepoErr != nil {
		return nil, transactionRepoErr //nolint:wrapcheck
	}
	return &LedgerService{
		uow:             u,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
		l:               l.WithField("component", "ledger"),
	}, nil
}

// GetAccount возвращает счет владельца. Отсутствие счета — это
// domain.ErrRecordNotFound, а не нулевой баланс: счет заводится только
// точкой первого пополнения.
func (s *LedgerService) GetAccount(ctx context.Context, ownerID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

// History возвращает журнал владельца от новых к старым.
func (s *LedgerService) History(ctx context.Context, ownerID int64) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}

// ApplyDelta применяет дельту к балансу и пишет запись журнала в одной
// транзакции БД.
func (s *LedgerService) ApplyDelta(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	var transaction *domain.Transaction
	var account *domain.Account

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var deltaErr error
		transaction, account, deltaErr = applyDelta(c, tx, args)
		return deltaErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("applying balance delta: %w", txErr)
	}

	s.emitBalanceChanged(ctx, account, transaction)
	return transaction, nil
}

// Debit списывает amount (положительное число) кредитов.
// Пробрасывает domain.ErrInsufficientBalance.
func (s *LedgerService) Debit(
	ctx context.Context,
	ownerID, amount int64,
	transactionType domain.TransactionType,
	description, referenceID string,
) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	return s.ApplyDelta(ctx, repoargs.TransactionCreate{
		OwnerID:     ownerID,
		Amount:      -amount,
		Type:        transactionType,
		Description: description,
		ReferenceID: referenceID,
	})
}

// Credit зачисляет amount (положительное число) кредитов.
func (s *LedgerService) Credit(
	ctx context.Context,
	ownerID, amount int64,
	transactionType domain.TransactionType,
	description, referenceID string,
) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	return s.ApplyDelta(ctx, repoargs.TransactionCreate{
		OwnerID:     ownerID,
		Amount:      amount,
		Type:        transactionType,
		Description: description,
		ReferenceID: referenceID,
	})
}

// ConfirmPurchase зачисляет купленные кредиты по событию подтверждения
// оплаты. Идемпотентен по paymentRef: повторное подтверждение того же
// платежа возвращает уже существующую транзакцию без изменений баланса
// (уникальный индекс по reference_id для покупок откатывает весь юнит).
func (s *LedgerService) ConfirmPurchase(
	ctx context.Context,
	ownerID, credits int64,
	paymentRef string,
) (*domain.Transaction, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("purchase credits must be positive, got %d", credits)
	}
	if paymentRef == "" {
		return nil, errors.New("payment reference is required")
	}

	var transaction *domain.Transaction
	var account *domain.Account

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr :=
			uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		if _, ensureErr := accountRepo.EnsureAccount(c, ownerID); ensureErr != nil {
			return ensureErr //nolint:wrapcheck
		}

		var deltaErr error
		transaction, account, deltaErr = applyDelta(c, tx, repoargs.TransactionCreate{
			OwnerID:     ownerID,
			Amount:      credits,
			Type:        domain.TransactionPurchase,
			Description: "credit purchase",
			ReferenceID: paymentRef,
		})
		return deltaErr
	})

	if txErr != nil {
		if errors.Is(txErr, domain.ErrDuplicateKey) {
			existing, findErr := s.transactionRepo.FindByTypeAndReference(ctx, domain.TransactionPurchase, paymentRef)
			if findErr != nil {
				return nil, fmt.Errorf("resolving duplicate purchase %s: %w", paymentRef, findErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("confirming purchase %s: %w", paymentRef, txErr)
	}

	s.emitBalanceChanged(ctx, account, transaction)
	return transaction, nil
}

// VerifyBalance сверяет баланс счета с суммой журнала: повтор журнала
// обязан воспроизводить баланс. Оба чтения идут в одной транзакции, иначе
// конкурентная запись даст ложное расхождение. Несовпадение — это
// domain.ErrLedgerInconsistent: журнал append-only и меняется только вместе
// с балансом, поэтому расхождение означает повреждение данных.
func (s *LedgerService) VerifyBalance(ctx context.Context, ownerID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr :=
			uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		transactionRepo, transactionRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transactionRepoErr != nil {
			return transactionRepoErr //nolint:wrapcheck
		}

		account, getErr := accountRepo.GetByOwnerID(c, ownerID)
		if getErr != nil {
			return getErr //nolint:wrapcheck
		}
		sum, sumErr := transactionRepo.SumByOwnerID(c, ownerID)
		if sumErr != nil {
			return sumErr //nolint:wrapcheck
		}

		if sum != account.Balance {
			return fmt.Errorf(
				"ownerID %d: balance %d, journal sum %d: %w",
				ownerID, account.Balance, sum, domain.ErrLedgerInconsistent,
			)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrLedgerInconsistent) || errors.Is(txErr, domain.ErrRecordNotFound) {
			return txErr
		}
		return fmt.Errorf("verifying balance for ownerID %d: %w", ownerID, txErr)
	}
	return nil
}

// emitBalanceChanged отправляет событие после коммита. Сбой доставки не
// откатывает операцию — только лог.
func (s *LedgerService) emitBalanceChanged(
	ctx context.Context,
	account *domain.Account,
	transaction *domain.Transaction,
) {
	if s.notifier == nil || account == nil || transaction == nil {
		return
	}
	event := events.BalanceEvent{
		OwnerID:       account.OwnerID,
		Balance:       account.Balance,
		Amount:        transaction.Amount,
		Type:          transaction.Type,
		TransactionID: transaction.ID,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.notifier.BalanceChanged(ctx, event); err != nil {
		s.l.WithError(err).
			WithField("ownerID", account.OwnerID).
			WithField("transactionID", transaction.ID).
			Warn("failed to emit balance event")
	}
}
