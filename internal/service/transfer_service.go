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

const (
	DefaultHistoryLimit uint = 50
	MaxHistoryLimit     uint = 500

	reversalKeyPrefix = "reversal:"
)

type TransferArgs struct {
	FromAccountID  uuid.UUID
	ToAccountID    uuid.UUID
	Amount         int64
	Currency       string
	Reason         domain.TransferReason
	RefType        string
	RefID          string
	IdempotencyKey string
	Metadata       domain.Metadata
	// RequireFunds запрещает уводить счет-источник в минус. Строка счета блокируется до конца транзакции,
	// поэтому проверка и списание не разделены конкурентными переводами.
	RequireFunds bool
}

type ReverseArgs struct {
	OriginalTransferID uuid.UUID
	// Reason по умолчанию domain.ReasonRefund.
	Reason domain.TransferReason
	// RefID по умолчанию идентификатор исходного перевода.
	RefID string
	// IdempotencyKey по умолчанию "reversal:<id исходного перевода>".
	IdempotencyKey string
	Note           string
}

type TransferService struct {
	uow          uow.UOW
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	publisher    EventPublisher
}

// NewTransferService создает движок переводов. publisher может быть nil, тогда события не публикуются.
func NewTransferService(u uow.UOW, publisher EventPublisher) (*TransferService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transferRepo, err := uow.GetRepositoryAs[TransferRepository](u, uow.RepositoryName(repoargs.TransferRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	entryRepo, err := uow.GetRepositoryAs[EntryRepository](u, uow.RepositoryName(repoargs.EntryRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &TransferService{
		uow:          u,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		publisher:    publisher,
	}, nil
}

// Transfer проводит перевод Amount со счета FromAccountID на ToAccountID.
//
// Алгоритм работы:
//  1. Проверяет аргументы. Ошибки валидации возвращаются до любой записи.
//  2. Если указан ключ идемпотентности и перевод с ним уже есть, возвращает его без изменений.
//  3. В одной транзакции создает перевод и две проводки (списание и зачисление), сумма которых равна нулю.
//  4. Если конкурентный запрос с тем же ключом зафиксировался раньше, возвращает его перевод.
//  5. После фиксации публикует событие о проведенном переводе.
func (t *TransferService) Transfer(ctx context.Context, args TransferArgs) (*domain.Transfer, error) {
	args = normalizeTransferArgs(args)
	if err := validateTransferArgs(args); err != nil {
		return nil, err
	}

	if args.IdempotencyKey != "" {
		existing, found, err := loadByIdempotencyKey(ctx, t.transferRepo, t.entryRepo, args.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("transfer: %w", err)
		}
		if found {
			return existing, nil
		}
	}

	var posted *domain.Transfer
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var postErr error
		posted, postErr = post(c, tx, args)
		return postErr
	})
	if txErr != nil {
		if args.IdempotencyKey != "" && errors.Is(txErr, domain.ErrDuplicateKey) {
			return replay(ctx, t.transferRepo, t.entryRepo, args.IdempotencyKey)
		}
		return nil, fmt.Errorf("transfer: %w", txErr)
	}

	t.publish(ctx, posted)
	return posted, nil
}

// TransferTx то же, что Transfer, но в транзакции вызывающего. Записи выполняются в savepoint, поэтому
// конфликт ключа идемпотентности не ломает внешнюю транзакцию. События не публикуются: фиксацией
// управляет вызывающий.
func (t *TransferService) TransferTx(ctx context.Context, tx uow.TX, args TransferArgs) (*domain.Transfer, error) {
	args = normalizeTransferArgs(args)
	if err := validateTransferArgs(args); err != nil {
		return nil, err
	}

	transferRepo, entryRepo, reposErr := ledgerRepos(tx)
	if reposErr != nil {
		return nil, reposErr
	}

	if args.IdempotencyKey != "" {
		existing, found, err := loadByIdempotencyKey(ctx, transferRepo, entryRepo, args.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("transfer tx: %w", err)
		}
		if found {
			return existing, nil
		}
	}

	var posted *domain.Transfer
	spErr := tx.Savepoint(ctx, func(c context.Context, sp uow.TX) error {
		var postErr error
		posted, postErr = post(c, sp, args)
		return postErr
	})
	if spErr != nil {
		if args.IdempotencyKey != "" && errors.Is(spErr, domain.ErrDuplicateKey) {
			return replay(ctx, transferRepo, entryRepo, args.IdempotencyKey)
		}
		return nil, fmt.Errorf("transfer tx: %w", spErr)
	}
	return posted, nil
}

// ReverseTransfer проводит обратный перевод на полную сумму исходного. Исходный перевод не изменяется.
// Без явного ключа идемпотентности повторный вызов вернет уже созданный обратный перевод.
func (t *TransferService) ReverseTransfer(ctx context.Context, args ReverseArgs) (*domain.Transfer, error) {
	original, err := loadTransfer(ctx, t.transferRepo, t.entryRepo, args.OriginalTransferID)
	if err != nil {
		return nil, err
	}
	if original.State != domain.TransferStatePosted {
		return nil, fmt.Errorf("%w: transfer %s is %s", domain.ErrNotReversible, original.ID, original.State)
	}

	reason := args.Reason
	if reason == "" {
		reason = domain.ReasonRefund
	}
	refID := args.RefID
	if refID == "" {
		refID = original.ID.String()
	}
	key := strings.TrimSpace(args.IdempotencyKey)
	if key == "" {
		key = reversalKeyPrefix + original.ID.String()
	}

	return t.Transfer(ctx, TransferArgs{
		FromAccountID:  original.ToAccountID,
		ToAccountID:    original.FromAccountID,
		Amount:         original.Amount,
		Currency:       original.Currency,
		Reason:         reason,
		RefType:        domain.RefTypeRefund,
		RefID:          refID,
		IdempotencyKey: key,
		Metadata:       reversalMetadata(reason, original.ID, args.Note),
	})
}

// GetTransfer возвращает перевод вместе с проводками или domain.ErrTransferNotFound.
func (t *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	return loadTransfer(ctx, t.transferRepo, t.entryRepo, id)
}

// ListAccountTransfers возвращает историю переводов счета, новые первыми. Нулевой limit заменяется на
// DefaultHistoryLimit, слишком большой обрезается до MaxHistoryLimit.
func (t *TransferService) ListAccountTransfers(
	ctx context.Context,
	accountID uuid.UUID,
	limit uint,
) ([]domain.Transfer, error) {
	if _, err := findAccount(ctx, t.accountRepo, accountID); err != nil {
		return nil, err
	}

	switch {
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	transfers, err := t.transferRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list account transfers: %w", err)
	}
	if err := attachEntries(ctx, t.entryRepo, transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

func (t *TransferService) publish(ctx context.Context, transfer *domain.Transfer) {
	if t.publisher == nil {
		return
	}
	// перевод уже зафиксирован, отмена запроса не должна обрывать публикацию.
	t.publisher.PublishTransferPosted(context.WithoutCancel(ctx), transfer)
}

// post выполняет запись перевода и его проводок в транзакции tx.
func post(ctx context.Context, tx uow.TX, args TransferArgs) (*domain.Transfer, error) {
	accountRepo, err := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transferRepo, entryRepo, reposErr := ledgerRepos(tx)
	if reposErr != nil {
		return nil, reposErr
	}

	from, fromErr := sourceAccount(ctx, accountRepo, args)
	if fromErr != nil {
		return nil, fromErr
	}
	to, toErr := findAccount(ctx, accountRepo, args.ToAccountID)
	if toErr != nil {
		return nil, toErr
	}
	if from.Currency != args.Currency || to.Currency != args.Currency {
		return nil, fmt.Errorf(
			"%w: transfer in %s, from account in %s, to account in %s",
			domain.ErrCurrencyMismatch, args.Currency, from.Currency, to.Currency,
		)
	}

	if args.RequireFunds {
		available, sumErr := entryRepo.SumByAccount(ctx, from.ID)
		if sumErr != nil {
			return nil, fmt.Errorf("checking funds: %w", sumErr)
		}
		if available < args.Amount {
			return nil, fmt.Errorf(
				"%w: account %s has %d, transfer needs %d",
				domain.ErrInsufficientFunds, from.ID, available, args.Amount,
			)
		}
	}

	transfer, createErr := transferRepo.Create(ctx, repoargs.TransferCreate{
		ID:             uuid.New(),
		FromAccountID:  from.ID,
		ToAccountID:    to.ID,
		Amount:         args.Amount,
		Currency:       args.Currency,
		Reason:         args.Reason,
		RefType:        args.RefType,
		RefID:          args.RefID,
		IdempotencyKey: args.IdempotencyKey,
		State:          domain.TransferStatePosted,
		Metadata:       args.Metadata,
	})
	if createErr != nil {
		return nil, createErr //nolint:wrapcheck
	}

	entries := buildEntries(transfer)
	if err := checkBalanced(transfer.ID, entries[0].Amount, entries[1].Amount); err != nil {
		return nil, err
	}

	var batchErr error
	created := make([]domain.Entry, len(entries))
	closeErr := entryRepo.BatchCreate(ctx, entries, func(i int, e *domain.Entry, err error) {
		if err != nil {
			if batchErr == nil {
				batchErr = err
			}
			return
		}
		created[i] = *e
	})
	if batchErr != nil {
		return nil, batchErr
	}
	if closeErr != nil {
		return nil, closeErr //nolint:wrapcheck
	}

	transfer.Entries = created
	debit, hasDebit := transfer.Debit()
	credit, hasCredit := transfer.Credit()
	if !hasDebit || !hasCredit {
		return nil, domain.NewInvariantViolationError(transfer.ID, debit.Amount, credit.Amount)
	}
	if err := checkBalanced(transfer.ID, debit.Amount, credit.Amount); err != nil {
		return nil, err
	}
	return transfer, nil
}

// sourceAccount читает счет-источник, при RequireFunds с блокировкой строки.
func sourceAccount(ctx context.Context, repo AccountRepository, args TransferArgs) (*domain.Account, error) {
	if !args.RequireFunds {
		return findAccount(ctx, repo, args.FromAccountID)
	}
	account, err := repo.LockByID(ctx, args.FromAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, args.FromAccountID)
		}
		return nil, fmt.Errorf("lock account: %w", err)
	}
	return account, nil
}

// buildEntries строит пару проводок перевода: списание с from и зачисление на to.
func buildEntries(transfer *domain.Transfer) []repoargs.EntryCreate {
	newEntry := func(accountID uuid.UUID, amount int64, direction domain.DirectionType) repoargs.EntryCreate {
		return repoargs.EntryCreate{
			ID:         uuid.New(),
			TransferID: transfer.ID,
			AccountID:  accountID,
			Amount:     amount,
			Currency:   transfer.Currency,
			Direction:  direction,
			RefType:    transfer.RefType,
			RefID:      transfer.RefID,
			Metadata:   transfer.Metadata,
		}
	}
	return []repoargs.EntryCreate{
		newEntry(transfer.FromAccountID, -transfer.Amount, domain.DirectionDebit),
		newEntry(transfer.ToAccountID, transfer.Amount, domain.DirectionCredit),
	}
}

func checkBalanced(transferID uuid.UUID, debit, credit int64) error {
	if debit >= 0 || credit <= 0 || debit+credit != 0 {
		return domain.NewInvariantViolationError(transferID, debit, credit)
	}
	return nil
}

func normalizeTransferArgs(args TransferArgs) TransferArgs {
	args.Currency = domain.NormalizeCurrency(args.Currency)
	args.IdempotencyKey = strings.TrimSpace(args.IdempotencyKey)
	args.RefType = strings.TrimSpace(args.RefType)
	args.RefID = strings.TrimSpace(args.RefID)
	return args
}

func validateTransferArgs(args TransferArgs) error {
	if args.Amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, args.Amount)
	}
	if args.FromAccountID == uuid.Nil || args.ToAccountID == uuid.Nil {
		return fmt.Errorf("%w: account id is empty", domain.ErrInvalidAccount)
	}
	if args.FromAccountID == args.ToAccountID {
		return domain.ErrSameAccount
	}
	if len(args.Currency) != currencyCodeLen {
		return fmt.Errorf("%w: currency %q", domain.ErrValidation, args.Currency)
	}
	if err := args.Metadata.ValidateFor(args.Reason); err != nil {
		return err //nolint:wrapcheck
	}
	return nil
}

func reversalMetadata(reason domain.TransferReason, originalID uuid.UUID, note string) domain.Metadata {
	switch reason { //nolint:exhaustive
	case domain.ReasonRefund:
		return domain.Metadata{Refund: &domain.RefundDetails{OriginalTransferID: originalID.String(), Note: note}}
	case domain.ReasonAdjustment:
		if note == "" {
			note = "reversal of " + originalID.String()
		}
		return domain.Metadata{Adjustment: &domain.AdjustmentDetails{Note: note}}
	default:
		return domain.Metadata{}
	}
}

func ledgerRepos(tx uow.TX) (TransferRepository, EntryRepository, error) {
	transferRepo, err := uow.GetAs[TransferRepository](tx, uow.RepositoryName(repoargs.TransferRepoName))
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	entryRepo, err := uow.GetAs[EntryRepository](tx, uow.RepositoryName(repoargs.EntryRepoName))
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	return transferRepo, entryRepo, nil
}

// loadByIdempotencyKey ищет перевод по ключу. found=false, если перевода нет.
func loadByIdempotencyKey(
	ctx context.Context,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	key string,
) (*domain.Transfer, bool, error) {
	transfer, err := transferRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err //nolint:wrapcheck
	}
	transfers := []domain.Transfer{*transfer}
	if err := attachEntries(ctx, entryRepo, transfers); err != nil {
		return nil, false, err
	}
	return &transfers[0], true, nil
}

// replay возвращает перевод победителя гонки по ключу идемпотентности.
func replay(
	ctx context.Context,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	key string,
) (*domain.Transfer, error) {
	existing, found, err := loadByIdempotencyKey(ctx, transferRepo, entryRepo, key)
	if err != nil {
		return nil, fmt.Errorf("replay idempotency key %q: %w", key, err)
	}
	if !found {
		return nil, fmt.Errorf("replay idempotency key %q: conflicting transfer is not visible: %w",
			key, domain.ErrUnknown)
	}
	return existing, nil
}

func loadTransfer(
	ctx context.Context,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	id uuid.UUID,
) (*domain.Transfer, error) {
	transfer, err := transferRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransferNotFound, id)
		}
		return nil, fmt.Errorf("find transfer: %w", err)
	}
	transfers := []domain.Transfer{*transfer}
	if err := attachEntries(ctx, entryRepo, transfers); err != nil {
		return nil, err
	}
	return &transfers[0], nil
}

// attachEntries загружает проводки одним запросом и раскладывает их по переводам.
func attachEntries(ctx context.Context, entryRepo EntryRepository, transfers []domain.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(transfers))
	for i := range transfers {
		ids[i] = transfers[i].ID
	}

	entries, err := entryRepo.GetByTransferIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	byTransfer := make(map[uuid.UUID][]domain.Entry, len(transfers))
	for _, e := range entries {
		byTransfer[e.TransferID] = append(byTransfer[e.TransferID], e)
	}
	for i := range transfers {
		transfers[i].Entries = byTransfer[transfers[i].ID]
	}
	return nil
}
