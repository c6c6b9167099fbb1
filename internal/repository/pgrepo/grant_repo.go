package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type GrantRepository struct {
	conn uow.DBTX
}

func NewGrantRepository(conn uow.DBTX) *GrantRepository {
	return &GrantRepository{conn: conn}
}

func (g *GrantRepository) Create(ctx context.Context, args repoargs.GrantCreate) (*domain.ServiceGrant, error) {
	row := g.conn.QueryRow(ctx, `
		INSERT INTO service_grants (owner_id, profile_id, service_id, transaction_id, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, owner_id, profile_id, service_id, transaction_id, end_date`,
		args.OwnerID, args.ProfileID, args.ServiceID, args.TransactionID, args.EndDate)

	grant, err := scanGrant(row)
	if err != nil {
		return nil, convertErr(err, "creating grant for profileID %d", args.ProfileID)
	}
	return grant, nil
}

// GetActiveByProfileID возвращает действующие услуги профиля: бессрочные
// и те, чей срок еще не истек на момент now.
func (g *GrantRepository) GetActiveByProfileID(
	ctx context.Context,
	profileID int64,
	now time.Time,
) ([]domain.ServiceGrant, error) {
	rows, err := g.conn.Query(ctx, `
		SELECT id, created_at, owner_id, profile_id, service_id, transaction_id, end_date
		FROM service_grants
		WHERE profile_id = $1 AND (end_date IS NULL OR end_date > $2)
		ORDER BY created_at DESC`, profileID, now)
	if err != nil {
		return nil, convertErr(err, "getting active grants for profileID %d", profileID)
	}
	defer rows.Close()

	var grants []domain.ServiceGrant
	for rows.Next() {
		grant, scanErr := scanGrant(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning grant for profileID %d", profileID)
		}
		grants = append(grants, *grant)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading grants for profileID %d", profileID)
	}
	return grants, nil
}

func scanGrant(row pgx.Row) (*domain.ServiceGrant, error) {
	var grant domain.ServiceGrant
	err := row.Scan(
		&grant.ID,
		&grant.CreatedAt,
		&grant.OwnerID,
		&grant.ProfileID,
		&grant.ServiceID,
		&grant.TransactionID,
		&grant.EndDate,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &grant, nil
}
