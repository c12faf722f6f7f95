package domain

import (
	"encoding/json"
	"fmt"
)

// Metadata структурированные метаданные перевода. Заполняется не больше одного варианта, и вариант должен
// соответствовать причине перевода (см. reasonVariants).
type Metadata struct {
	Purchase   *PurchaseDetails   `json:"purchase,omitempty"`
	Refund     *RefundDetails     `json:"refund,omitempty"`
	Payout     *PayoutDetails     `json:"payout,omitempty"`
	Adjustment *AdjustmentDetails `json:"adjustment,omitempty"`
}

type PurchaseDetails struct {
	OrderID          string `json:"order_id,omitempty"`
	ProcessorEventID string `json:"processor_event_id,omitempty"`
	ProductRef       string `json:"product_ref,omitempty"`
}

type RefundDetails struct {
	OriginalTransferID string `json:"original_transfer_id,omitempty"`
	Note               string `json:"note,omitempty"`
}

type PayoutDetails struct {
	PayoutRequestID string `json:"payout_request_id,omitempty"`
	Destination     string `json:"destination,omitempty"`
}

type AdjustmentDetails struct {
	Note     string `json:"note,omitempty"`
	Operator string `json:"operator,omitempty"`
}

type metadataVariant string

const (
	variantPurchase   metadataVariant = "purchase"
	variantRefund     metadataVariant = "refund"
	variantPayout     metadataVariant = "payout"
	variantAdjustment metadataVariant = "adjustment"
)

var reasonVariants = map[TransferReason]metadataVariant{
	ReasonPurchase:    variantPurchase,
	ReasonPurchaseFee: variantPurchase,
	ReasonPurchaseNet: variantPurchase,
	ReasonFee:         variantPurchase,
	ReasonRefund:      variantRefund,
	ReasonPayout:      variantPayout,
	ReasonAdjustment:  variantAdjustment,
}

func (m Metadata) variants() []metadataVariant {
	var res []metadataVariant
	if m.Purchase != nil {
		res = append(res, variantPurchase)
	}
	if m.Refund != nil {
		res = append(res, variantRefund)
	}
	if m.Payout != nil {
		res = append(res, variantPayout)
	}
	if m.Adjustment != nil {
		res = append(res, variantAdjustment)
	}
	return res
}

// IsZero true, если ни один вариант не заполнен.
func (m Metadata) IsZero() bool {
	return len(m.variants()) == 0
}

// ValidateFor проверяет, что метаданные допустимы для причины reason. Пустые метаданные допустимы всегда.
func (m Metadata) ValidateFor(reason TransferReason) error {
	want, ok := reasonVariants[reason]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownReason, reason)
	}
	got := m.variants()
	switch {
	case len(got) == 0:
		return nil
	case len(got) > 1:
		return fmt.Errorf("%w: several variants set %v", ErrMetadataMismatch, got)
	case got[0] != want:
		return fmt.Errorf("%w: reason %q expects %q, got %q", ErrMetadataMismatch, reason, want, got[0])
	}
	return nil
}

// Encode сериализует метаданные для колонки JSONB.
func (m Metadata) Encode() ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %s", err.Error())
	}
	return b, nil
}

// DecodeMetadata обратная операция к Encode. Пустой ввод дает пустые метаданные.
func DecodeMetadata(raw []byte) (Metadata, error) {
	var m Metadata
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decoding metadata: %s", err.Error())
	}
	return m, nil
}
