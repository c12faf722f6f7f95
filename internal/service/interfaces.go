package service

import (
	"context"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AccountRepository interface {
	GetOrCreate(ctx context.Context, args repoargs.AccountGetOrCreate) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

type TransferRepository interface {
	Create(ctx context.Context, args repoargs.TransferCreate) (*domain.Transfer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint) ([]domain.Transfer, error)
}

type EntryRepository interface {
	BatchCreate(ctx context.Context, entries []repoargs.EntryCreate, fn repoargs.EntryBatchQueryRow) error
	GetByTransferIDs(ctx context.Context, transferIDs []uuid.UUID) ([]domain.Entry, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	SumAll(ctx context.Context) (int64, error)
	FindUnbalanced(ctx context.Context, limit uint) ([]domain.TransferImbalance, error)
}

// EventPublisher получает уведомления о проведенных переводах уже после фиксации транзакции.
// Реализация сама обрабатывает свои ошибки: проведенный перевод не может "не случиться" из-за брокера.
type EventPublisher interface {
	PublishTransferPosted(ctx context.Context, transfer *domain.Transfer)
}
