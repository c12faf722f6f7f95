package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	defaultConnectAttempts      uint = 30
	defaultConnectRetryInterval      = 3 * time.Second
)

// ConnectOptions параметры повторных попыток подключения к базе.
type ConnectOptions struct {
	MaxAttempts   uint
	RetryInterval time.Duration
}

// DefaultConnectOptions 30 попыток с интервалом в 3 секунды.
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		MaxAttempts:   defaultConnectAttempts,
		RetryInterval: defaultConnectRetryInterval,
	}
}

// Connect открывает пул соединений, повторяя попытки пока база не станет доступна, и применяет миграции
// журнала из migrationsDir.
func Connect(
	ctx context.Context,
	migrationsDir, dsn string,
	opts ConnectOptions,
	l *logrus.Logger,
) (*pgxpool.Pool, error) {
	conn, connErr := connectWithRetry(ctx, dsn, opts, l)
	if connErr != nil {
		return nil, fmt.Errorf("init postgres connection: %s", connErr.Error())
	}

	if err := Migrate(migrationsDir, dsn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func connectWithRetry(
	ctx context.Context,
	dsn string,
	opts ConnectOptions,
	l *logrus.Logger,
) (*pgxpool.Pool, error) {
	var attempts uint
	for {
		conn, connErr := newPostgresConnection(ctx, dsn)
		if connErr == nil {
			return conn, nil
		}

		attempts++
		if attempts >= opts.MaxAttempts {
			return nil, fmt.Errorf("after %d attempts: %w", attempts, connErr)
		}
		l.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempts, opts.MaxAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", opts.RetryInterval.Seconds())

		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(opts.RetryInterval):
		}
	}
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

// Migrate применяет миграции из каталога dir. Требует зарегистрированных драйверов
// golang-migrate для postgres и file.
func Migrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
