package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type BoostRepository struct {
	conn uow.DBTX
}

func NewBoostRepository(conn uow.DBTX) *BoostRepository {
	return &BoostRepository{conn: conn}
}

// ExpireDue переводит просроченные бусты в expired одним условным UPDATE.
// Условие по активному статусу гарантирует, что конкурирующий свипер не
// обработает тот же буст второй раз.
func (b *BoostRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.Boost, error) {
	rows, err := b.conn.Query(ctx, `
		UPDATE boosts
		SET status = $2, updated_at = now()
		WHERE status = $3 AND end_date < $1
		RETURNING id, profile_id, status, end_date`,
		now, domain.BoostStatusExpired, domain.BoostStatusActive)
	if err != nil {
		return nil, convertErr(err, "expiring boosts")
	}
	defer rows.Close()

	var expired []domain.Boost
	for rows.Next() {
		var boost domain.Boost
		if scanErr := rows.Scan(&boost.ID, &boost.ProfileID, &boost.Status, &boost.EndDate); scanErr != nil {
			return nil, convertErr(scanErr, "scanning expired boost")
		}
		expired = append(expired, boost)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "reading expired boosts")
	}
	return expired, nil
}

// HasActive сообщает, остался ли у профиля хоть один активный буст.
func (b *BoostRepository) HasActive(ctx context.Context, profileID int64) (bool, error) {
	var exists bool
	err := b.conn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM boosts WHERE profile_id = $1 AND status = $2
		)`, profileID, domain.BoostStatusActive).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking active boosts for profileID %d", profileID)
	}
	return exists, nil
}
