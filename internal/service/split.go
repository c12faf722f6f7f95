package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/google/uuid"
)

const (
	feeLegSuffix = ":fee"
	netLegSuffix = ":net"
)

// Leg результат одной ноги разделенного платежа. Отсутствующая нога означает, что перевод не требовался
// (например, нулевая комиссия), а не то, что он не удался: неудача всегда возвращается ошибкой.
type Leg struct {
	transfer *domain.Transfer
}

func PresentLeg(transfer *domain.Transfer) Leg {
	return Leg{transfer: transfer}
}

func AbsentLeg() Leg {
	return Leg{}
}

func (l Leg) Present() bool {
	return l.transfer != nil
}

// Transfer возвращает перевод ноги и признак его наличия.
func (l Leg) Transfer() (*domain.Transfer, bool) {
	return l.transfer, l.transfer != nil
}

type SplitArgs struct {
	BuyerAccountID      uuid.UUID
	InstructorAccountID uuid.UUID
	PlatformAccountID   uuid.UUID
	GrossAmount         int64
	PlatformFeeAmount   int64
	Currency            string
	RefID               string
	// IdempotencyKey базовый ключ, ноги проводятся с ключами key+":fee" и key+":net".
	IdempotencyKey string
	Metadata       domain.Metadata
}

type SplitResult struct {
	Fee Leg
	Net Leg
}

// SplitTransfer раскладывает покупку на две ноги: комиссию платформы (buyer -> platform) и чистую сумму
// автору (buyer -> instructor).
//
// Ноги проводятся отдельными транзакциями. Если вторая нога не прошла, первая остается проведенной,
// а вызывающий должен повторить весь вызов с тем же ключом: уже проведенная нога вернется без повторной записи.
func (t *TransferService) SplitTransfer(ctx context.Context, args SplitArgs) (*SplitResult, error) {
	args.Currency = domain.NormalizeCurrency(args.Currency)
	args.IdempotencyKey = strings.TrimSpace(args.IdempotencyKey)
	if err := validateSplitArgs(args); err != nil {
		return nil, err
	}

	net := args.GrossAmount - args.PlatformFeeAmount
	res := &SplitResult{Fee: AbsentLeg(), Net: AbsentLeg()}

	if args.PlatformFeeAmount > 0 {
		fee, err := t.Transfer(ctx, args.legArgs(
			args.PlatformAccountID, args.PlatformFeeAmount, domain.ReasonPurchaseFee, feeLegSuffix,
		))
		if err != nil {
			return nil, fmt.Errorf("split transfer fee leg: %w", err)
		}
		res.Fee = PresentLeg(fee)
	}

	if net > 0 {
		netTransfer, err := t.Transfer(ctx, args.legArgs(
			args.InstructorAccountID, net, domain.ReasonPurchaseNet, netLegSuffix,
		))
		if err != nil {
			return nil, fmt.Errorf("split transfer net leg: %w", err)
		}
		res.Net = PresentLeg(netTransfer)
	}

	return res, nil
}

func (a SplitArgs) legArgs(
	to uuid.UUID,
	amount int64,
	reason domain.TransferReason,
	keySuffix string,
) TransferArgs {
	var key string
	if a.IdempotencyKey != "" {
		key = a.IdempotencyKey + keySuffix
	}
	return TransferArgs{
		FromAccountID:  a.BuyerAccountID,
		ToAccountID:    to,
		Amount:         amount,
		Currency:       a.Currency,
		Reason:         reason,
		RefType:        domain.RefTypePurchase,
		RefID:          a.RefID,
		IdempotencyKey: key,
		Metadata:       a.Metadata,
	}
}

// validateSplitArgs проверяет обе ноги заранее, чтобы отказ не оставлял проведенной одну из них.
func validateSplitArgs(args SplitArgs) error {
	if args.GrossAmount <= 0 {
		return fmt.Errorf("%w: gross %d", domain.ErrInvalidAmount, args.GrossAmount)
	}
	if args.PlatformFeeAmount < 0 || args.PlatformFeeAmount > args.GrossAmount {
		return fmt.Errorf("%w: fee %d, gross %d", domain.ErrInvalidFee, args.PlatformFeeAmount, args.GrossAmount)
	}
	net := args.GrossAmount - args.PlatformFeeAmount

	if args.PlatformFeeAmount > 0 {
		if err := validateTransferArgs(args.legArgs(
			args.PlatformAccountID, args.PlatformFeeAmount, domain.ReasonPurchaseFee, feeLegSuffix,
		)); err != nil {
			return err
		}
	}
	if net > 0 {
		if err := validateTransferArgs(args.legArgs(
			args.InstructorAccountID, net, domain.ReasonPurchaseNet, netLegSuffix,
		)); err != nil {
			return err
		}
	}
	return nil
}
