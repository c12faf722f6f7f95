package repoargs

import (
	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/google/uuid"
)

type EntryCreate struct {
	ID         uuid.UUID
	TransferID uuid.UUID
	AccountID  uuid.UUID
	Amount     int64
	Currency   string
	Direction  domain.DirectionType
	RefType    string
	RefID      string
	Metadata   domain.Metadata
}

// EntryBatchQueryRow вызывается для каждой строки батч вставки проводок.
type EntryBatchQueryRow func(i int, e *domain.Entry, err error)
