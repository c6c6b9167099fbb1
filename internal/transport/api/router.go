package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// SweepTimeout больше обычного: свип обрабатывает батч.
	SweepTimeout = 30 * time.Second
)

const (
	RouteGroup         = "/api"
	BalanceRoute       = "/balance"
	TransactionsRoute  = "/transactions"
	ActivateRoute      = "/premium/activate"
	GrantsRoute        = "/premium/grants"
	PayoutsRoute       = "/payouts"
	TrackReferralRoute = "/internal/referrals/track"
	ConfirmRoute       = "/internal/purchases/confirm"
	SweepBoostsRoute   = "/internal/sweeps/boosts"
	SweepStoriesRoute  = "/internal/sweeps/stories"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	LedgerService   LedgerServicer
	PremiumService  PremiumServicer
	PayoutService   PayoutServicer
	ReferralService ReferralServicer
	BoostSweeper    Sweeper
	StorySweeper    Sweeper
	JWTSecretKey    []byte
	SchedulerToken  string
	AllowedOrigins  []string
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	// preflight обслуживает сам cors: пустое тело и заголовки разрешенного
	// origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type", middlewares.SchedulerTokenHeader}
	if len(args.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = args.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	balanceHandler := NewBalanceHandler(args.LedgerService)
	premiumHandler := NewPremiumHandler(args.PremiumService)
	payoutHandler := NewPayoutHandler(args.PayoutService)
	referralHandler := NewReferralHandler(args.ReferralService)
	sweepHandler := NewSweepHandler(args.BoostSweeper, args.StorySweeper)
	purchaseHandler := NewPurchaseHandler(args.LedgerService)

	api := r.Group(RouteGroup)

	// внутренние маршруты: планировщик и бэкенд основного приложения.
	internal := api.Group("", middlewares.SchedulerAuth(args.SchedulerToken))
	internal.POST(TrackReferralRoute, referralHandler.Track)
	internal.POST(ConfirmRoute, purchaseHandler.Confirm)
	internal.POST(SweepBoostsRoute, sweepHandler.Boosts)
	internal.POST(SweepStoriesRoute, sweepHandler.Stories)

	// ниже все роуты группы требуют авторизованного пользователя.
	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	api.GET(BalanceRoute, balanceHandler.Index)
	api.GET(TransactionsRoute, balanceHandler.History)
	api.POST(ActivateRoute, premiumHandler.Activate)
	api.GET(GrantsRoute, premiumHandler.Grants)
	api.POST(PayoutsRoute, payoutHandler.Create)
	api.GET(PayoutsRoute, payoutHandler.Index)

	return r
}
