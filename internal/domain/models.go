package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account денежная "корзина". Баланс не хранится, а всегда вычисляется по проводкам.
type Account struct {
	ID        uuid.UUID
	CreatedAt time.Time
	OwnerID   string
	Kind      AccountKind
	Currency  string
}

// Transfer одно атомарное движение средств между двумя счетами. Amount всегда положителен,
// знак несут проводки.
type Transfer struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	FromAccountID  uuid.UUID
	ToAccountID    uuid.UUID
	Amount         int64
	Currency       string
	Reason         TransferReason
	RefType        string
	RefID          string
	IdempotencyKey string
	State          TransferState
	Metadata       Metadata
	Entries        []Entry
}

// Entry проводка по одному счету. Amount < 0 списание, Amount > 0 зачисление.
type Entry struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	TransferID uuid.UUID
	AccountID  uuid.UUID
	Amount     int64
	Currency   string
	Direction  DirectionType
	RefType    string
	RefID      string
	Metadata   Metadata
}

// Debit возвращает проводку списания, если она загружена.
func (t *Transfer) Debit() (Entry, bool) {
	for _, e := range t.Entries {
		if e.Direction == DirectionDebit {
			return e, true
		}
	}
	return Entry{}, false
}

// Credit возвращает проводку зачисления, если она загружена.
func (t *Transfer) Credit() (Entry, bool) {
	for _, e := range t.Entries {
		if e.Direction == DirectionCredit {
			return e, true
		}
	}
	return Entry{}, false
}

// Balance производное значение на момент чтения.
type Balance struct {
	AccountID uuid.UUID
	Currency  string
	Amount    int64
}

// TransferImbalance перевод, чьи проводки не дают в сумме ноль или которых не ровно две.
type TransferImbalance struct {
	TransferID uuid.UUID
	Sum        int64
	Entries    int
}
