package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive

	"github.com/rshanto/gameghor/internal/cache"
	"github.com/rshanto/gameghor/internal/config"
	"github.com/rshanto/gameghor/internal/repository/pgrepo"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service"
	"github.com/rshanto/gameghor/internal/transport/api"
	"github.com/rshanto/gameghor/internal/transport/nagad"
	"github.com/rshanto/gameghor/internal/transport/nagad/client"
	"github.com/rshanto/gameghor/pkg/uow"
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

	var catalogCache service.CatalogCache
	if a.Config.RedisAddr != "" {
		catalogCache = cache.New(a.Config.RedisAddr, a.Logger).SetTTL(a.Config.CacheTTL)
	}

	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{
		JWTSecret: []byte(a.Config.JWTUserSecret),
		AdminCode: a.Config.AdminCode,
		Cache:     catalogCache,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	verifier := nagad.NewVerifier(a.Logger)
	if a.Config.NagadLedgerURL != "" {
		verifier = verifier.SetLedger(client.New(a.Config.NagadLedgerURL))
	}

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		CatalogService: services.CatalogService,
		CouponService:  services.CouponService,
		OrderService:   services.OrderService,
		UserService:    services.UserService,
		ReviewService:  services.ReviewService,
		Verifier:       verifier,
		JWTSecretKey:   []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	repos := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.GameRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewGameRepository(dbtx)
		},
		repoargs.CouponRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCouponRepository(dbtx)
		},
		repoargs.OrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewOrderRepository(dbtx)
		},
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.ReviewRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewReviewRepository(dbtx)
		},
	}

	for name, factoryFn := range repos {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factoryFn); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
