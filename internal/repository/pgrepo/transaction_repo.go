package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx, `
		INSERT INTO transactions (owner_id, amount, type, description, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, owner_id, amount, type, description, reference_id`,
		args.OwnerID, args.Amount, args.Type, args.Description, args.ReferenceID)

	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for ownerID %d", args.OwnerID)
	}
	return transaction, nil
}

// GetByOwnerID возвращает журнал владельца от новых к старым.
func (t *TransactionRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Transaction, error) {
	rows, err := t.conn.Query(ctx, `
		SELECT id, created_at, owner_id, amount, type, description, reference_id
		FROM transactions
		WHERE owner_id = $1
		ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, convertErr(err, "getting transactions for ownerID %d", ownerID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning transaction for ownerID %d", ownerID)
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading transactions for ownerID %d", ownerID)
	}
	return transactions, nil
}

// SumByOwnerID суммирует журнал владельца. По инварианту результат обязан
// совпадать с accounts.balance.
func (t *TransactionRepository) SumByOwnerID(ctx context.Context, ownerID int64) (int64, error) {
	var sum int64
	err := t.conn.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1`, ownerID).Scan(&sum)
	if err != nil {
		return 0, convertErr(err, "summing transactions for ownerID %d", ownerID)
	}
	return sum, nil
}

// FindByTypeAndReference ищет транзакцию по типу и внешнему reference_id.
// Используется идемпотентным подтверждением покупки.
func (t *TransactionRepository) FindByTypeAndReference(
	ctx context.Context,
	transactionType domain.TransactionType,
	referenceID string,
) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx, `
		SELECT id, created_at, owner_id, amount, type, description, reference_id
		FROM transactions
		WHERE type = $1 AND reference_id = $2`, transactionType, referenceID)

	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding transaction by reference %s", referenceID)
	}
	return transaction, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.OwnerID,
		&transaction.Amount,
		&transaction.Type,
		&transaction.Description,
		&transaction.ReferenceID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &transaction, nil
}
