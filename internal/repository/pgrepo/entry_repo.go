package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `id, transfer_id, account_id, amount, currency, direction, ref_type, ref_id, metadata, created_at`

type EntryRepository struct {
	db uow.DBTX
}

func NewEntryRepository(db uow.DBTX) *EntryRepository {
	return &EntryRepository{db: db}
}

// BatchCreate вставляет проводки одним батчем. Для каждой строки вызывается fn с созданной проводкой
// либо с ошибкой. Возвращаемая ошибка относится к закрытию батча.
func (e *EntryRepository) BatchCreate(
	ctx context.Context,
	entries []repoargs.EntryCreate,
	fn repoargs.EntryBatchQueryRow,
) error {
	batch := &pgx.Batch{}
	for i := range entries {
		entry := entries[i]
		metadata, encErr := entry.Metadata.Encode()
		if encErr != nil {
			return convertErr(encErr, "encoding entry metadata")
		}
		batch.Queue(`
			INSERT INTO entries (
				id, transfer_id, account_id, amount, currency, direction, ref_type, ref_id, metadata
			) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)
			RETURNING `+entryColumns,
			entry.ID,
			entry.TransferID,
			entry.AccountID,
			entry.Amount,
			entry.Currency,
			string(entry.Direction),
			entry.RefType,
			entry.RefID,
			metadata,
		)
	}

	br := e.db.SendBatch(ctx, batch)
	for i := range entries {
		created, err := scanEntry(br.QueryRow())
		if err != nil {
			fn(i, nil, convertErr(err, "creating entry for transfer %s", entries[i].TransferID))
			continue
		}
		fn(i, created, nil)
	}
	return convertErr(br.Close(), "closing entries batch")
}

// GetByTransferIDs возвращает проводки указанных переводов.
func (e *EntryRepository) GetByTransferIDs(ctx context.Context, transferIDs []uuid.UUID) ([]domain.Entry, error) {
	if len(transferIDs) == 0 {
		return []domain.Entry{}, nil
	}
	rows, err := e.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE transfer_id = ANY($1::uuid[])
		ORDER BY created_at, amount`,
		uuidStrings(transferIDs),
	)
	if err != nil {
		return nil, convertErr(err, "getting entries by transfer ids")
	}
	defer rows.Close()

	var entries = make([]domain.Entry, 0, len(transferIDs)*2) //nolint:mnd
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning entry")
		}
		entries = append(entries, *entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting entries by transfer ids")
	}
	return entries, nil
}

// SumByAccount возвращает сумму проводок проведенных переводов по счету. Счет без проводок дает 0.
func (e *EntryRepository) SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var sum int64
	err := e.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(e.amount), 0)::BIGINT
		FROM entries e
		JOIN transfers t ON t.id = e.transfer_id
		WHERE e.account_id = $1 AND t.state = $2`,
		accountID, string(domain.TransferStatePosted),
	).Scan(&sum)
	if err != nil {
		return 0, convertErr(err, "summing entries of account %s", accountID)
	}
	return sum, nil
}

// SumAll возвращает сумму всех проводок журнала.
func (e *EntryRepository) SumAll(ctx context.Context) (int64, error) {
	var sum int64
	if err := e.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM entries`).Scan(&sum); err != nil {
		return 0, convertErr(err, "summing all entries")
	}
	return sum, nil
}

// FindUnbalanced возвращает переводы, у которых сумма проводок не равна нулю или число проводок не равно двум.
// Переводы совсем без проводок тоже попадают в выборку.
func (e *EntryRepository) FindUnbalanced(ctx context.Context, limit uint) ([]domain.TransferImbalance, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}

	rows, err := e.db.Query(ctx, `
		SELECT t.id, COALESCE(SUM(e.amount), 0)::BIGINT, COUNT(e.id)::INT
		FROM transfers t
		LEFT JOIN entries e ON e.transfer_id = t.id
		GROUP BY t.id
		HAVING COALESCE(SUM(e.amount), 0) <> 0 OR COUNT(e.id) <> 2
		ORDER BY t.id
		LIMIT $1`,
		safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "finding unbalanced transfers")
	}
	defer rows.Close()

	var res = make([]domain.TransferImbalance, 0)
	for rows.Next() {
		var imb domain.TransferImbalance
		if scanErr := rows.Scan(&imb.TransferID, &imb.Sum, &imb.Entries); scanErr != nil {
			return nil, convertErr(scanErr, "scanning unbalanced transfer")
		}
		res = append(res, imb)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "finding unbalanced transfers")
	}
	return res, nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry
	var direction string
	var refType, refID *string
	var metadata []byte

	err := row.Scan(
		&entry.ID,
		&entry.TransferID,
		&entry.AccountID,
		&entry.Amount,
		&entry.Currency,
		&direction,
		&refType,
		&refID,
		&metadata,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	decoded, decErr := domain.DecodeMetadata(metadata)
	if decErr != nil {
		return nil, decErr //nolint:wrapcheck
	}
	entry.Direction = domain.DirectionType(direction)
	entry.RefType = nullableString(refType)
	entry.RefID = nullableString(refID)
	entry.Metadata = decoded
	return &entry, nil
}
