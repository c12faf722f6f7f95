package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/service"
)

type AccountResponse struct {
	ID        uuid.UUID          `json:"id"`
	OwnerID   string             `json:"owner_id"`
	Kind      domain.AccountKind `json:"kind"`
	Currency  string             `json:"currency"`
	CreatedAt time.Time          `json:"created_at"`
}

type BalanceResponse struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Currency    string          `json:"currency"`
	Amount      int64           `json:"amount"`
	AmountMajor decimal.Decimal `json:"amount_major"`
}

type EntryResponse struct {
	ID        uuid.UUID            `json:"id"`
	AccountID uuid.UUID            `json:"account_id"`
	Amount    int64                `json:"amount"`
	Direction domain.DirectionType `json:"direction"`
}

type TransferResponse struct {
	ID             uuid.UUID             `json:"id"`
	FromAccountID  uuid.UUID             `json:"from_account_id"`
	ToAccountID    uuid.UUID             `json:"to_account_id"`
	Amount         int64                 `json:"amount"`
	AmountMajor    decimal.Decimal       `json:"amount_major"`
	Currency       string                `json:"currency"`
	Reason         domain.TransferReason `json:"reason"`
	RefType        string                `json:"ref_type,omitempty"`
	RefID          string                `json:"ref_id,omitempty"`
	IdempotencyKey string                `json:"idempotency_key,omitempty"`
	State          domain.TransferState  `json:"state"`
	Metadata       domain.Metadata       `json:"metadata"`
	Entries        []EntryResponse       `json:"entries"`
	CreatedAt      time.Time             `json:"created_at"`
}

// SplitResponse отсутствующая нога отдается как null.
type SplitResponse struct {
	Fee *TransferResponse `json:"fee"`
	Net *TransferResponse `json:"net"`
}

type ImbalanceResponse struct {
	TransferID uuid.UUID `json:"transfer_id"`
	Sum        int64     `json:"sum"`
	Entries    int       `json:"entries"`
}

func newAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Kind:      a.Kind,
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt,
	}
}

func newTransferResponse(t *domain.Transfer) TransferResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			Amount:    e.Amount,
			Direction: e.Direction,
		}
	}
	return TransferResponse{
		ID:             t.ID,
		FromAccountID:  t.FromAccountID,
		ToAccountID:    t.ToAccountID,
		Amount:         t.Amount,
		AmountMajor:    domain.MinorToMajor(t.Amount, t.Currency),
		Currency:       t.Currency,
		Reason:         t.Reason,
		RefType:        t.RefType,
		RefID:          t.RefID,
		IdempotencyKey: t.IdempotencyKey,
		State:          t.State,
		Metadata:       t.Metadata,
		Entries:        entries,
		CreatedAt:      t.CreatedAt,
	}
}

func newLegResponse(leg service.Leg) *TransferResponse {
	t, ok := leg.Transfer()
	if !ok {
		return nil
	}
	res := newTransferResponse(t)
	return &res
}
