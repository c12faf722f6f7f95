package repoargs

import (
	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/google/uuid"
)

type TransferCreate struct {
	ID             uuid.UUID
	FromAccountID  uuid.UUID
	ToAccountID    uuid.UUID
	Amount         int64
	Currency       string
	Reason         domain.TransferReason
	RefType        string
	RefID          string
	IdempotencyKey string
	State          domain.TransferState
	Metadata       domain.Metadata
}
