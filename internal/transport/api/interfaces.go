package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/service"
)

type LedgerServicer interface {
	GetAccount(ctx context.Context, ownerID int64) (*domain.Account, error)
	History(ctx context.Context, ownerID int64) ([]domain.Transaction, error)
	ConfirmPurchase(ctx context.Context, ownerID, credits int64, paymentRef string) (*domain.Transaction, error)
}

type PremiumServicer interface {
	Activate(ctx context.Context, ownerID, profileID, serviceID int64) (*domain.ServiceGrant, error)
	ActiveGrants(ctx context.Context, profileID int64) ([]domain.ServiceGrant, error)
}

type PayoutServicer interface {
	RequestPayout(ctx context.Context, args service.RequestPayoutArgs) (*domain.PayoutRequest, error)
	Requests(ctx context.Context, ownerID, profileID int64) ([]domain.PayoutRequest, error)
}

type ReferralServicer interface {
	Track(ctx context.Context, affiliateCode string, referredUserID int64) (bool, error)
}

// Sweeper — один проход реконсиляции, вызываемый планировщиком по HTTP.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}
