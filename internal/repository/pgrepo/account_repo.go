package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type AccountRepository struct {
	conn uow.DBTX
}

func NewAccountRepository(conn uow.DBTX) *AccountRepository {
	return &AccountRepository{conn: conn}
}

func (a *AccountRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		SELECT id, created_at, updated_at, owner_id, balance, total_spent
		FROM accounts
		WHERE owner_id = $1`, ownerID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "getting account by ownerID %d", ownerID)
	}
	return account, nil
}

// EnsureAccount создает счет с нулевым балансом, если его еще нет.
// Используется только точкой первого касания (подтверждение покупки).
func (a *AccountRepository) EnsureAccount(ctx context.Context, ownerID int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		INSERT INTO accounts (owner_id, balance, total_spent)
		VALUES ($1, 0, 0)
		ON CONFLICT (owner_id) DO UPDATE SET updated_at = now()
		RETURNING id, created_at, updated_at, owner_id, balance, total_spent`, ownerID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "ensuring account for ownerID %d", ownerID)
	}
	return account, nil
}

// AdjustBalance атомарно сдвигает баланс на args.Delta. Условие
// balance + delta >= 0 входит в сам UPDATE, поэтому два конкурирующих
// списания не могут оба пройти, если их сумма увела бы баланс в минус.
// Возвращает domain.ErrInsufficientBalance если средств не хватает и
// domain.ErrRecordNotFound если счета нет.
func (a *AccountRepository) AdjustBalance(
	ctx context.Context,
	args repoargs.AdjustBalance,
) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		UPDATE accounts
		SET balance     = balance + $2,
		    total_spent = total_spent + CASE WHEN $2 < 0 THEN -$2 ELSE 0 END,
		    updated_at  = now()
		WHERE owner_id = $1 AND balance + $2 >= 0
		RETURNING id, created_at, updated_at, owner_id, balance, total_spent`,
		args.OwnerID, args.Delta)

	account, err := scanAccount(row)
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) && !isCheckViolationErr(err) {
		return nil, convertErr(err, "adjusting balance for ownerID %d", args.OwnerID)
	}

	// UPDATE не зацепил строку: либо счета нет, либо не прошло условие
	// достаточности средств. Различаем по наличию счета.
	if _, getErr := a.GetByOwnerID(ctx, args.OwnerID); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("[repository/adjusting balance for ownerID %d] %w", args.OwnerID, domain.ErrInsufficientBalance)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.OwnerID,
		&account.Balance,
		&account.TotalSpent,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
