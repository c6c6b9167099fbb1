package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type PayoutRepository struct {
	conn uow.DBTX
}

func NewPayoutRepository(conn uow.DBTX) *PayoutRepository {
	return &PayoutRepository{conn: conn}
}

func (p *PayoutRepository) Create(ctx context.Context, args repoargs.PayoutCreate) (*domain.PayoutRequest, error) {
	row := p.conn.QueryRow(ctx, `
		INSERT INTO payout_requests (public_id, profile_id, amount, pix_key, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, public_id, created_at, profile_id, amount, pix_key, status`,
		args.PublicID, args.ProfileID, args.Amount, args.PixKey)

	request, err := scanPayoutRequest(row)
	if err != nil {
		return nil, convertErr(err, "creating payout request for profileID %d", args.ProfileID)
	}
	return request, nil
}

// GetByProfileID возвращает заявки профиля от новых к старым.
func (p *PayoutRepository) GetByProfileID(ctx context.Context, profileID int64) ([]domain.PayoutRequest, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT id, public_id, created_at, profile_id, amount, pix_key, status
		FROM payout_requests
		WHERE profile_id = $1
		ORDER BY id DESC`, profileID)
	if err != nil {
		return nil, convertErr(err, "getting payout requests for profileID %d", profileID)
	}
	defer rows.Close()

	var requests []domain.PayoutRequest
	for rows.Next() {
		request, scanErr := scanPayoutRequest(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning payout request for profileID %d", profileID)
		}
		requests = append(requests, *request)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading payout requests for profileID %d", profileID)
	}
	return requests, nil
}

func scanPayoutRequest(row pgx.Row) (*domain.PayoutRequest, error) {
	var request domain.PayoutRequest
	err := row.Scan(
		&request.ID,
		&request.PublicID,
		&request.CreatedAt,
		&request.ProfileID,
		&request.Amount,
		&request.PixKey,
		&request.Status,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &request, nil
}
