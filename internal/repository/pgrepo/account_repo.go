package pgrepo

import (
	"context"
	"errors"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, owner_id, kind, currency, created_at`

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetOrCreate возвращает счет с указанной тройкой (owner, kind, currency), создавая его при отсутствии.
// Конкурентные вызовы с одной тройкой сходятся к одной записи благодаря уникальному индексу.
func (a *AccountRepository) GetOrCreate(
	ctx context.Context,
	args repoargs.AccountGetOrCreate,
) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		INSERT INTO accounts (id, owner_id, kind, currency)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, kind, currency) DO NOTHING
		RETURNING `+accountColumns,
		uuid.New(), args.OwnerID, string(args.Kind), args.Currency,
	)
	account, err := scanAccount(row)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, convertErr(err, "creating account %s/%s/%s", args.OwnerID, args.Kind, args.Currency)
	}

	// Запись уже существует, ON CONFLICT ничего не вернул.
	return a.FindByIdentity(ctx, args)
}

// FindByIdentity ищет счет по тройке (owner, kind, currency). Возвращает domain.ErrRecordNotFound,
// если счета нет.
func (a *AccountRepository) FindByIdentity(
	ctx context.Context,
	args repoargs.AccountGetOrCreate,
) (*domain.Account, error) {
	row := a.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE owner_id = $1 AND kind = $2 AND currency = $3`,
		args.OwnerID, string(args.Kind), args.Currency,
	)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account %s/%s/%s", args.OwnerID, args.Kind, args.Currency)
	}
	return account, nil
}

func (a *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account by id %s", id)
	}
	return account, nil
}

// LockByID читает счет с блокировкой строки до конца транзакции. Вне транзакции смысла не имеет.
func (a *AccountRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account %s", id)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		kind    string
	)
	if err := row.Scan(&account.ID, &account.OwnerID, &kind, &account.Currency, &account.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck
	}
	account.Kind = domain.AccountKind(kind)
	return &account, nil
}
