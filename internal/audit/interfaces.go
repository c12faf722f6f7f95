package audit

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

type Servicer interface {
	VerifyLedgerInvariant(ctx context.Context) (bool, error)
	FindUnbalancedTransfers(ctx context.Context, limit uint) ([]domain.TransferImbalance, error)
}
