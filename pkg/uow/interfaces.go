package uow

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TX единица работы, открытая в рамках одной транзакции БД. Репозитории, полученные через Get, работают
// внутри этой транзакции.
type TX interface {
	Get(name RepositoryName) (Repository, error)
	// Savepoint выполняет fn во вложенной транзакции (SAVEPOINT). Ошибка fn откатывает только savepoint,
	// внешняя транзакция остается пригодной для дальнейших запросов.
	Savepoint(ctx context.Context, fn func(ctx context.Context, tx TX) error) error
}

// DBTX общий знаменатель pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

type UOW interface {
	Register(name RepositoryName, factory RepositoryFactory) error
	Do(ctx context.Context, fn func(ctx context.Context, tx TX) error) error
	GetRepository(name RepositoryName) (Repository, error)
}
