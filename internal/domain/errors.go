package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	// ErrValidation базовая ошибка валидации. Возвращается до какой-либо записи в хранилище.
	ErrValidation = errors.New("validation error")
)

var (
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrSameAccount       = fmt.Errorf("%w: from and to accounts must differ", ErrValidation)
	ErrCurrencyMismatch  = fmt.Errorf("%w: currency mismatch", ErrValidation)
	ErrInvalidFee        = fmt.Errorf("%w: platform fee must be within [0, gross]", ErrValidation)
	ErrUnknownReason     = fmt.Errorf("%w: unknown transfer reason", ErrValidation)
	ErrMetadataMismatch  = fmt.Errorf("%w: metadata does not match transfer reason", ErrValidation)
	ErrNotReversible     = fmt.Errorf("%w: transfer is not reversible", ErrValidation)
	ErrInvalidAccount    = fmt.Errorf("%w: invalid account identity", ErrValidation)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrValidation)
)

var (
	ErrAccountNotFound  = fmt.Errorf("account: %w", ErrRecordNotFound)
	ErrTransferNotFound = fmt.Errorf("transfer: %w", ErrRecordNotFound)
)

// InvariantViolationError признак логической ошибки: проводки перевода не сходятся в ноль.
// Транзакция с такой ошибкой никогда не фиксируется.
type InvariantViolationError struct {
	TransferID uuid.UUID
	Debit      int64
	Credit     int64
	stack      error
}

func NewInvariantViolationError(transferID uuid.UUID, debit, credit int64) error {
	e := &InvariantViolationError{
		TransferID: transferID,
		Debit:      debit,
		Credit:     credit,
	}
	e.stack = pkgerrors.New(e.Error())
	return e
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf(
		"invariant violation: transfer %s debit %d + credit %d != 0",
		e.TransferID,
		e.Debit,
		e.Credit,
	)
}

// StackTrace стек в точке обнаружения нарушения, для алертов.
func (e *InvariantViolationError) StackTrace() string {
	return fmt.Sprintf("%+v", e.stack)
}
