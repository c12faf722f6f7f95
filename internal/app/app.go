package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-ledger/internal/audit"
	"github.com/fsdevblog/groph-ledger/internal/config"
	"github.com/fsdevblog/groph-ledger/internal/events"
	"github.com/fsdevblog/groph-ledger/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/internal/service"
	"github.com/fsdevblog/groph-ledger/internal/transport/api"
	"github.com/fsdevblog/groph-ledger/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
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

	a.Logger.WithFields(logrus.Fields{
		"runAddress":    a.Config.RunAddress,
		"migrationsDir": a.Config.MigrationsDir,
		"events":        a.Config.RabbitMQURL != "",
		"auditInterval": a.Config.AuditInterval.String(),
	}).Info("starting ledger")

	conn, connErr := pgrepo.Connect(
		notifyCtx,
		a.Config.MigrationsDir,
		a.Config.DatabaseDSN,
		pgrepo.DefaultConnectOptions(),
		a.Logger,
	)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	publisher, closePublisher, pubErr := a.initPublisher()
	if pubErr != nil {
		return fmt.Errorf("app run: %s", pubErr.Error())
	}
	defer closePublisher()

	services, sErr := service.Factory(unitOfWork, publisher)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:          a.Logger,
		AccountService:  services.AccountService,
		TransferService: services.TransferService,
		AuditService:    services.AuditService,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	auditor := audit.New(services.AuditService, a.Logger).
		SetInterval(a.Config.AuditInterval).
		SetUnbalancedLimit(a.Config.AuditUnbalancedLimit)

	go auditor.Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initPublisher без RABBITMQ_URL события отключены и публикация только логируется.
func (a *App) initPublisher() (service.EventPublisher, func(), error) {
	if a.Config.RabbitMQURL == "" {
		a.Logger.Info("rabbitmq url is not set, transfer events are disabled")
		return events.NewNopPublisher(a.Logger), func() {}, nil
	}

	publisher, err := events.NewRabbitMQPublisher(a.Config.RabbitMQURL, a.Config.RabbitMQExchange, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init publisher: %w", err)
	}
	closeFn := func() {
		if closeErr := publisher.Close(); closeErr != nil {
			a.Logger.WithError(closeErr).Warn("failed to close rabbitmq publisher")
		}
	}
	return publisher, closeFn, nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// account repo
	accountRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewAccountRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.AccountRepoName), accountRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// transfer repo
	transferRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewTransferRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.TransferRepoName), transferRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// entry repo
	entryRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewEntryRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.EntryRepoName), entryRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
