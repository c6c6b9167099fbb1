package pgrepo

import (
	"context"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

type ReferralRepository struct {
	conn uow.DBTX
}

func NewReferralRepository(conn uow.DBTX) *ReferralRepository {
	return &ReferralRepository{conn: conn}
}

func (r *ReferralRepository) FindAffiliateByCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	var affiliate domain.Affiliate
	err := r.conn.QueryRow(ctx, `
		SELECT id, code, is_active
		FROM affiliates
		WHERE code = $1`, code).Scan(&affiliate.ID, &affiliate.Code, &affiliate.IsActive)
	if err != nil {
		return nil, convertErr(err, "finding affiliate by code %s", code)
	}
	return &affiliate, nil
}

// Create вставляет реферальную запись. Дубликат пары
// (affiliate_id, referred_user_id) упирается в уникальный индекс и
// возвращается как domain.ErrDuplicateKey — гонку конкурентных повторов
// разрешает сама БД.
func (r *ReferralRepository) Create(
	ctx context.Context,
	args repoargs.ReferralCreate,
) (*domain.AffiliateReferral, error) {
	var referral domain.AffiliateReferral
	err := r.conn.QueryRow(ctx, `
		INSERT INTO affiliate_referrals (affiliate_id, referred_user_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, created_at, affiliate_id, referred_user_id, status`,
		args.AffiliateID, args.ReferredUserID).Scan(
		&referral.ID,
		&referral.CreatedAt,
		&referral.AffiliateID,
		&referral.ReferredUserID,
		&referral.Status,
	)
	if err != nil {
		return nil, convertErr(err, "creating referral for affiliateID %d", args.AffiliateID)
	}
	return &referral, nil
}
