package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transferColumns = `id, from_account_id, to_account_id, amount, currency, reason, ref_type, ref_id,
	idempotency_key, state, metadata, created_at`

type TransferRepository struct {
	db uow.DBTX
}

func NewTransferRepository(db uow.DBTX) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create вставляет перевод. При конфликте ключа идемпотентности возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (t *TransferRepository) Create(ctx context.Context, args repoargs.TransferCreate) (*domain.Transfer, error) {
	metadata, encErr := args.Metadata.Encode()
	if encErr != nil {
		return nil, convertErr(encErr, "creating transfer")
	}

	row := t.db.QueryRow(ctx, `
		INSERT INTO transfers (
			id, from_account_id, to_account_id, amount, currency, reason,
			ref_type, ref_id, idempotency_key, state, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
		RETURNING `+transferColumns,
		args.ID,
		args.FromAccountID,
		args.ToAccountID,
		args.Amount,
		args.Currency,
		string(args.Reason),
		args.RefType,
		args.RefID,
		args.IdempotencyKey,
		string(args.State),
		metadata,
	)
	transfer, err := scanTransfer(row)
	if err != nil {
		return nil, convertErr(err, "creating transfer %s", args.ID)
	}
	return transfer, nil
}

// FindByID возвращает перевод без проводок или domain.ErrRecordNotFound.
func (t *TransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	row := t.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
	transfer, err := scanTransfer(row)
	if err != nil {
		return nil, convertErr(err, "finding transfer by id %s", id)
	}
	return transfer, nil
}

// FindByIdempotencyKey возвращает перевод без проводок или domain.ErrRecordNotFound.
func (t *TransferRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	row := t.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE idempotency_key = $1`, key)
	transfer, err := scanTransfer(row)
	if err != nil {
		return nil, convertErr(err, "finding transfer by idempotency key `%s`", key)
	}
	return transfer, nil
}

// ListByAccount возвращает переводы, затрагивающие счет, отсортированные по дате создания по убыванию.
func (t *TransferRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	limit uint,
) ([]domain.Transfer, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}

	rows, err := t.db.Query(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		accountID, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "listing transfers of account %s", accountID)
	}
	defer rows.Close()

	var transfers = make([]domain.Transfer, 0, safeLimit)
	for rows.Next() {
		transfer, scanErr := scanTransfer(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning transfer of account %s", accountID)
		}
		transfers = append(transfers, *transfer)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing transfers of account %s", accountID)
	}
	return transfers, nil
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var transfer domain.Transfer
	var reason, state string
	var refType, refID, idemKey *string
	var metadata []byte
	err := row.Scan(
		&transfer.ID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&transfer.Amount,
		&transfer.Currency,
		&reason,
		&refType,
		&refID,
		&idemKey,
		&state,
		&metadata,
		&transfer.CreatedAt,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	decoded, decErr := domain.DecodeMetadata(metadata)
	if decErr != nil {
		return nil, decErr //nolint:wrapcheck
	}

	transfer.Reason = domain.TransferReason(reason)
	transfer.State = domain.TransferState(state)
	transfer.RefType = nullableString(refType)
	transfer.RefID = nullableString(refID)
	transfer.IdempotencyKey = nullableString(idemKey)
	transfer.Metadata = decoded
	return &transfer, nil
}
