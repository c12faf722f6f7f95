package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
)

type AuditService struct {
	entryRepo EntryRepository
}

func NewAuditService(u uow.UOW) (*AuditService, error) {
	entryRepo, err := uow.GetRepositoryAs[EntryRepository](u, uow.RepositoryName(repoargs.EntryRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &AuditService{entryRepo: entryRepo}, nil
}

// VerifyLedgerInvariant true, если сумма всех проводок журнала равна нулю.
func (a *AuditService) VerifyLedgerInvariant(ctx context.Context) (bool, error) {
	sum, err := a.entryRepo.SumAll(ctx)
	if err != nil {
		return false, fmt.Errorf("verify ledger invariant: %w", err)
	}
	return sum == 0, nil
}

// FindUnbalancedTransfers возвращает не больше limit переводов, проводки которых не сходятся в ноль
// или которых не ровно две.
func (a *AuditService) FindUnbalancedTransfers(
	ctx context.Context,
	limit uint,
) ([]domain.TransferImbalance, error) {
	res, err := a.entryRepo.FindUnbalanced(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("find unbalanced transfers: %w", err)
	}
	return res, nil
}
