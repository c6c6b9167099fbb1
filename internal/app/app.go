package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/internal/config"
	"github.com/fsdevblog/vitrine/internal/events"
	"github.com/fsdevblog/vitrine/internal/media"
	"github.com/fsdevblog/vitrine/internal/repository/pgrepo"
	"github.com/fsdevblog/vitrine/internal/repository/repoargs"
	"github.com/fsdevblog/vitrine/internal/service"
	"github.com/fsdevblog/vitrine/internal/sweeper"
	"github.com/fsdevblog/vitrine/internal/transport/api"
	"github.com/fsdevblog/vitrine/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	notifier, closeNotifier, notifierErr := a.initNotifier()
	if notifierErr != nil {
		return fmt.Errorf("app run: %s", notifierErr.Error())
	}
	defer closeNotifier()

	services, svsErr := service.Factory(unitOfWork, notifier, a.Config.MinimumPayout, a.Logger)
	if svsErr != nil {
		return fmt.Errorf("app run: %s", svsErr.Error())
	}

	boostSweeper := sweeper.NewBoostSweeper(unitOfWork, a.Logger)
	storySweeper, storySweeperErr := sweeper.NewStorySweeper(unitOfWork, a.initMediaStorage(), a.Logger)
	if storySweeperErr != nil {
		return fmt.Errorf("app run: %s", storySweeperErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:          a.Logger,
		LedgerService:   services.Ledger,
		PremiumService:  services.Premium,
		PayoutService:   services.Payout,
		ReferralService: services.Referral,
		BoostSweeper:    boostSweeper,
		StorySweeper:    storySweeper,
		JWTSecretKey:    []byte(a.Config.JWTSecret),
		SchedulerToken:  a.Config.SchedulerToken,
		AllowedOrigins:  a.Config.AllowedOrigins,
	})

	errChan := make(chan error, 1)
	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	runner := sweeper.NewRunner(a.Logger, boostSweeper, storySweeper).
		SetInterval(a.Config.SweepInterval)
	go runner.Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initNotifier поднимает Kafka-нотификатор, если сконфигурированы брокеры.
// Без брокеров события баланса просто не отправляются.
func (a *App) initNotifier() (service.Notifier, func(), error) {
	if a.Config.KafkaBrokers == "" {
		return nil, func() {}, nil
	}
	notifier, err := events.NewKafkaNotifier(a.Config.KafkaBrokers, a.Config.KafkaTopic, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init notifier: %s", err.Error())
	}
	return notifier, notifier.Close, nil
}

// initMediaStorage поднимает S3-хранилище, если оно сконфигурировано.
// Без него свипер историй удаляет только метаданные.
func (a *App) initMediaStorage() sweeper.MediaStorage {
	if a.Config.S3Bucket == "" {
		return nil
	}
	storage, err := media.NewS3Storage(media.S3Config{
		Endpoint:  a.Config.S3Endpoint,
		Region:    a.Config.S3Region,
		Bucket:    a.Config.S3Bucket,
		AccessKey: a.Config.S3AccessKey,
		SecretKey: a.Config.S3SecretKey,
	})
	if err != nil {
		a.Logger.WithError(err).Warn("init media storage failed, story media will not be removed")
		return nil
	}
	return storage
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.AccountRepoName:     func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewAccountRepository(dbtx) },
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewTransactionRepository(dbtx) },
		repoargs.CatalogRepoName:     func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewCatalogRepository(dbtx) },
		repoargs.GrantRepoName:       func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewGrantRepository(dbtx) },
		repoargs.BoostRepoName:       func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewBoostRepository(dbtx) },
		repoargs.ProfileRepoName:     func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewProfileRepository(dbtx) },
		repoargs.EarningsRepoName:    func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewEarningsRepository(dbtx) },
		repoargs.PayoutRepoName:      func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewPayoutRepository(dbtx) },
		repoargs.ReferralRepoName:    func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewReferralRepository(dbtx) },
		repoargs.StoryRepoName:       func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewStoryRepository(dbtx) },
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
