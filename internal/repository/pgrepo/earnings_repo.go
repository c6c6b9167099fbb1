package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type EarningsRepository struct {
	conn uow.DBTX
}

func NewEarningsRepository(conn uow.DBTX) *EarningsRepository {
	return &EarningsRepository{conn: conn}
}

func (e *EarningsRepository) GetByProfileID(ctx context.Context, profileID int64) (*domain.Earnings, error) {
	var earnings domain.Earnings
	err := e.conn.QueryRow(ctx, `
		SELECT profile_id, pending_payout
		FROM earnings
		WHERE profile_id = $1`, profileID).Scan(&earnings.ProfileID, &earnings.PendingPayout)
	if err != nil {
		return nil, convertErr(err, "getting earnings for profileID %d", profileID)
	}
	return &earnings, nil
}

// Withdraw атомарно уменьшает pending_payout. Условие достаточности входит
// в UPDATE: при нехватке средств строка не изменяется и возвращается
// domain.ErrInsufficientEarnings, при отсутствии строки —
// domain.ErrRecordNotFound.
func (e *EarningsRepository) Withdraw(ctx context.Context, profileID int64, amount int64) error {
	tag, err := e.conn.Exec(ctx, `
		UPDATE earnings
		SET pending_payout = pending_payout - $2, updated_at = now()
		WHERE profile_id = $1 AND pending_payout >= $2`, profileID, amount)
	if err != nil && !isCheckViolationErr(err) {
		return convertErr(err, "withdrawing earnings for profileID %d", profileID)
	}
	if err == nil && tag.RowsAffected() > 0 {
		return nil
	}

	if _, getErr := e.GetByProfileID(ctx, profileID); getErr != nil {
		return getErr
	}
	return fmt.Errorf("[repository/withdrawing earnings for profileID %d] %w", profileID, domain.ErrInsufficientEarnings)
}
