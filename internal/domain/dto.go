package domain

import "strings"

type AccountKind string

const (
	AccountKindBuyer      AccountKind = "buyer"
	AccountKindInstructor AccountKind = "instructor"
	AccountKindPlatform   AccountKind = "platform"
	AccountKindPayoutSink AccountKind = "payout_sink"
)

// Valid допускает и неизвестные заранее виды счетов, лишь бы имя было непустым и в нижнем регистре.
func (k AccountKind) Valid() bool {
	s := string(k)
	return s != "" && strings.TrimSpace(s) == s && strings.ToLower(s) == s
}

type DirectionType string

const (
	DirectionDebit  DirectionType = "debit"
	DirectionCredit DirectionType = "credit"
)

type TransferState string

const (
	TransferStatePosted  TransferState = "posted"
	TransferStatePending TransferState = "pending"
	TransferStateFailed  TransferState = "failed"
)

type TransferReason string

const (
	ReasonPurchase    TransferReason = "purchase"
	ReasonPurchaseFee TransferReason = "purchase_fee"
	ReasonPurchaseNet TransferReason = "purchase_net"
	ReasonRefund      TransferReason = "refund"
	ReasonPayout      TransferReason = "payout"
	ReasonFee         TransferReason = "fee"
	ReasonAdjustment  TransferReason = "adjustment"
)

// Valid сообщает, известна ли причина перевода.
func (r TransferReason) Valid() bool {
	_, ok := reasonVariants[r]
	return ok
}

const (
	RefTypePurchase = "purchase"
	RefTypeRefund   = "refund"
	RefTypePayout   = "payout"
)

// NormalizeCurrency приводит код валюты к виду ISO 4217 (верхний регистр, без пробелов).
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}
