package pgrepo

import (
	"context"

	"github.com/fsdevblog/vitrine/pkg/uow"
)

// ProfileRepository — минимальный доступ к профилям основного приложения:
// проверка владельца и производный флаг featured.
type ProfileRepository struct {
	conn uow.DBTX
}

func NewProfileRepository(conn uow.DBTX) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

func (p *ProfileRepository) OwnerID(ctx context.Context, profileID int64) (int64, error) {
	var ownerID int64
	err := p.conn.QueryRow(ctx, `
		SELECT owner_id FROM profiles WHERE id = $1`, profileID).Scan(&ownerID)
	if err != nil {
		return 0, convertErr(err, "getting owner of profileID %d", profileID)
	}
	return ownerID, nil
}

func (p *ProfileRepository) SetFeatured(ctx context.Context, profileID int64, featured bool) error {
	_, err := p.conn.Exec(ctx, `
		UPDATE profiles SET featured = $2, updated_at = now() WHERE id = $1`, profileID, featured)
	if err != nil {
		return convertErr(err, "setting featured=%t for profileID %d", featured, profileID)
	}
	return nil
}
