package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/service"
)

type AccountServicer interface {
	GetOrCreateAccount(
		ctx context.Context,
		ownerID string,
		kind domain.AccountKind,
		currency string,
	) (*domain.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID uuid.UUID) (*domain.Balance, error)
}

type TransferServicer interface {
	Transfer(ctx context.Context, args service.TransferArgs) (*domain.Transfer, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error)
	ListAccountTransfers(ctx context.Context, accountID uuid.UUID, limit uint) ([]domain.Transfer, error)
	ReverseTransfer(ctx context.Context, args service.ReverseArgs) (*domain.Transfer, error)
	SplitTransfer(ctx context.Context, args service.SplitArgs) (*service.SplitResult, error)
}

type AuditServicer interface {
	VerifyLedgerInvariant(ctx context.Context) (bool, error)
	FindUnbalancedTransfers(ctx context.Context, limit uint) ([]domain.TransferImbalance, error)
}
