package service

import (
	"context"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/events"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AccountRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Account, error)
	EnsureAccount(ctx context.Context, ownerID int64) (*domain.Account, error)
	AdjustBalance(ctx context.Context, args repoargs.AdjustBalance) (*domain.Account, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Transaction, error)
	SumByOwnerID(ctx context.Context, ownerID int64) (int64, error)
	FindByTypeAndReference(
		ctx context.Context,
		transactionType domain.TransactionType,
		referenceID string,
	) (*domain.Transaction, error)
}

type CatalogRepository interface {
	FindByID(ctx context.Context, serviceID int64) (*domain.PremiumService, error)
}

type GrantRepository interface {
	Create(ctx context.Context, args repoargs.GrantCreate) (*domain.ServiceGrant, error)
	GetActiveByProfileID(ctx context.Context, profileID int64, now time.Time) ([]domain.ServiceGrant, error)
}

type ProfileRepository interface {
	OwnerID(ctx context.Context, profileID int64) (int64, error)
	SetFeatured(ctx context.Context, profileID int64, featured bool) error
}

type EarningsRepository interface {
	GetByProfileID(ctx context.Context, profileID int64) (*domain.Earnings, error)
	Withdraw(ctx context.Context, profileID int64, amount int64) error
}

type PayoutRepository interface {
	Create(ctx context.Context, args repoargs.PayoutCreate) (*domain.PayoutRequest, error)
	GetByProfileID(ctx context.Context, profileID int64) ([]domain.PayoutRequest, error)
}

type ReferralRepository interface {
	FindAffiliateByCode(ctx context.Context, code string) (*domain.Affiliate, error)
	Create(ctx context.Context, args repoargs.ReferralCreate) (*domain.AffiliateReferral, error)
}

// Notifier доставляет события об изменении баланса внешнему нотификатору.
// Доставка необязательна: ядро лишь гарантирует, что событие отправляется
// после коммита изменения.
type Notifier interface {
	BalanceChanged(ctx context.Context, event events.BalanceEvent) error
}
