package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
	"github.com/google/uuid"
)

const currencyCodeLen = 3

type AccountService struct {
	uow         uow.UOW
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

func NewAccountService(u uow.UOW) (*AccountService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	entryRepo, err := uow.GetRepositoryAs[EntryRepository](u, uow.RepositoryName(repoargs.EntryRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &AccountService{
		uow:         u,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}, nil
}

// GetOrCreateAccount возвращает счет владельца ownerID вида kind в валюте currency, создавая его при первом
// обращении. Повторные и конкурентные вызовы с теми же аргументами возвращают один и тот же счет.
func (a *AccountService) GetOrCreateAccount(
	ctx context.Context,
	ownerID string,
	kind domain.AccountKind,
	currency string,
) (*domain.Account, error) {
	args := repoargs.AccountGetOrCreate{
		OwnerID:  strings.TrimSpace(ownerID),
		Kind:     kind,
		Currency: domain.NormalizeCurrency(currency),
	}
	if err := validateAccountIdentity(args); err != nil {
		return nil, err
	}

	account, err := a.accountRepo.GetOrCreate(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("get or create account: %w", err)
	}
	return account, nil
}

// GetAccount возвращает счет по идентификатору или domain.ErrAccountNotFound.
func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return findAccount(ctx, a.accountRepo, id)
}

// GetBalance возвращает баланс счета на момент чтения: сумму проводок по проведенным переводам.
// Блокировок не берет, конкурентный перевод может быть как учтен, так и нет.
func (a *AccountService) GetBalance(ctx context.Context, accountID uuid.UUID) (*domain.Balance, error) {
	account, err := findAccount(ctx, a.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	sum, sumErr := a.entryRepo.SumByAccount(ctx, account.ID)
	if sumErr != nil {
		return nil, fmt.Errorf("get balance: %w", sumErr)
	}
	return &domain.Balance{
		AccountID: account.ID,
		Currency:  account.Currency,
		Amount:    sum,
	}, nil
}

func validateAccountIdentity(args repoargs.AccountGetOrCreate) error {
	if args.OwnerID == "" {
		return fmt.Errorf("%w: owner id is blank", domain.ErrInvalidAccount)
	}
	if !args.Kind.Valid() {
		return fmt.Errorf("%w: kind %q", domain.ErrInvalidAccount, args.Kind)
	}
	if len(args.Currency) != currencyCodeLen {
		return fmt.Errorf("%w: currency %q", domain.ErrInvalidAccount, args.Currency)
	}
	return nil
}

func findAccount(ctx context.Context, repo AccountRepository, id uuid.UUID) (*domain.Account, error) {
	account, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}
