package events

import (
	"time"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

const (
	RoutingKeyTransferPosted = "ledger.transfer.posted"
	EventTypeTransferPosted  = "transfer.posted"
)

type EntryPayload struct {
	EntryID   string `json:"entry_id"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Direction string `json:"direction"`
}

// TransferPostedEvent тело сообщения о проведенном переводе. Суммы в минорных единицах.
type TransferPostedEvent struct {
	EventType      string          `json:"event_type"`
	TransferID     string          `json:"transfer_id"`
	FromAccountID  string          `json:"from_account_id"`
	ToAccountID    string          `json:"to_account_id"`
	Amount         int64           `json:"amount"`
	AmountMajor    string          `json:"amount_major"`
	Currency       string          `json:"currency"`
	Reason         string          `json:"reason"`
	RefType        string          `json:"ref_type,omitempty"`
	RefID          string          `json:"ref_id,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	Metadata       domain.Metadata `json:"metadata"`
	Entries        []EntryPayload  `json:"entries"`
	PostedAt       time.Time       `json:"posted_at"`
}

func NewTransferPostedEvent(t *domain.Transfer) TransferPostedEvent {
	entries := make([]EntryPayload, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryPayload{
			EntryID:   e.ID.String(),
			AccountID: e.AccountID.String(),
			Amount:    e.Amount,
			Direction: string(e.Direction),
		}
	}
	return TransferPostedEvent{
		EventType:      EventTypeTransferPosted,
		TransferID:     t.ID.String(),
		FromAccountID:  t.FromAccountID.String(),
		ToAccountID:    t.ToAccountID.String(),
		Amount:         t.Amount,
		AmountMajor:    domain.MinorToMajor(t.Amount, t.Currency).String(),
		Currency:       t.Currency,
		Reason:         string(t.Reason),
		RefType:        t.RefType,
		RefID:          t.RefID,
		IdempotencyKey: t.IdempotencyKey,
		Metadata:       t.Metadata,
		Entries:        entries,
		PostedAt:       t.CreatedAt.UTC(),
	}
}
