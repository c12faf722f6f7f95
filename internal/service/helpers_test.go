package service

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/google/uuid"
)

func fakeAccount(kind domain.AccountKind, currency string) *domain.Account {
	return &domain.Account{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		OwnerID:   gofakeit.UUID(),
		Kind:      kind,
		Currency:  currency,
	}
}

// transferFromArgs имитирует RETURNING вставки перевода.
func transferFromArgs(args repoargs.TransferCreate) *domain.Transfer {
	return &domain.Transfer{
		ID:             args.ID,
		CreatedAt:      time.Now(),
		FromAccountID:  args.FromAccountID,
		ToAccountID:    args.ToAccountID,
		Amount:         args.Amount,
		Currency:       args.Currency,
		Reason:         args.Reason,
		RefType:        args.RefType,
		RefID:          args.RefID,
		IdempotencyKey: args.IdempotencyKey,
		State:          args.State,
		Metadata:       args.Metadata,
	}
}

func entryFromArgs(args repoargs.EntryCreate) *domain.Entry {
	return &domain.Entry{
		ID:         args.ID,
		CreatedAt:  time.Now(),
		TransferID: args.TransferID,
		AccountID:  args.AccountID,
		Amount:     args.Amount,
		Currency:   args.Currency,
		Direction:  args.Direction,
		RefType:    args.RefType,
		RefID:      args.RefID,
		Metadata:   args.Metadata,
	}
}

// batchCreateOK имитирует успешную батч вставку проводок.
func batchCreateOK(_ context.Context, entries []repoargs.EntryCreate, fn repoargs.EntryBatchQueryRow) error {
	for i, e := range entries {
		fn(i, entryFromArgs(e), nil)
	}
	return nil
}

// postedTransfer готовый проведенный перевод с парой проводок.
func postedTransfer(from, to *domain.Account, amount int64, key string) *domain.Transfer {
	t := &domain.Transfer{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		FromAccountID:  from.ID,
		ToAccountID:    to.ID,
		Amount:         amount,
		Currency:       from.Currency,
		Reason:         domain.ReasonPurchase,
		IdempotencyKey: key,
		State:          domain.TransferStatePosted,
	}
	t.Entries = []domain.Entry{
		{ID: uuid.New(), TransferID: t.ID, AccountID: from.ID, Amount: -amount, Currency: t.Currency,
			Direction: domain.DirectionDebit},
		{ID: uuid.New(), TransferID: t.ID, AccountID: to.ID, Amount: amount, Currency: t.Currency,
			Direction: domain.DirectionCredit},
	}
	return t
}
