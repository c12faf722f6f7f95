package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/service"
)

type TransfersHandler struct {
	transferSvs TransferServicer
}

func NewTransfersHandler(transferSvs TransferServicer) *TransfersHandler {
	return &TransfersHandler{
		transferSvs: transferSvs,
	}
}

// TransferParams сумма и причина не проверяются на этапе биндинга: это делает сервис, а ответ
// получается 422 вместо 400.
type TransferParams struct {
	FromAccountID  uuid.UUID       `json:"from_account_id" binding:"required"`
	ToAccountID    uuid.UUID       `json:"to_account_id" binding:"required"`
	Amount         int64           `json:"amount"`
	Currency       string          `json:"currency" binding:"required,currency"`
	Reason         string          `json:"reason" binding:"required,max_bytes=32"`
	RefType        string          `json:"ref_type" binding:"omitempty,max_bytes=64"`
	RefID          string          `json:"ref_id" binding:"omitempty,max_bytes=255"`
	IdempotencyKey string          `json:"idempotency_key" binding:"omitempty,idempotency_key"`
	Metadata       domain.Metadata `json:"metadata"`
	RequireFunds   bool            `json:"require_funds"`
}

// Create POST RouteGroup + TransfersRoute.
func (t *TransfersHandler) Create(c *gin.Context) {
	var params TransferParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	key, ok := idempotencyKey(c, params.IdempotencyKey)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transfer, err := t.transferSvs.Transfer(reqCtx, service.TransferArgs{
		FromAccountID:  params.FromAccountID,
		ToAccountID:    params.ToAccountID,
		Amount:         params.Amount,
		Currency:       params.Currency,
		Reason:         domain.TransferReason(params.Reason),
		RefType:        params.RefType,
		RefID:          params.RefID,
		IdempotencyKey: key,
		Metadata:       params.Metadata,
		RequireFunds:   params.RequireFunds,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransferResponse(transfer))
}

// Show GET RouteGroup + TransferRoute.
func (t *TransfersHandler) Show(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transfer, err := t.transferSvs.GetTransfer(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransferResponse(transfer))
}

type ReverseParams struct {
	Reason         string `json:"reason" binding:"omitempty,max_bytes=32"`
	RefID          string `json:"ref_id" binding:"omitempty,max_bytes=255"`
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,idempotency_key"`
	Note           string `json:"note" binding:"omitempty,max_bytes=1024"`
}

// Reverse POST RouteGroup + TransferReversalRoute. Тело запроса необязательно.
func (t *TransfersHandler) Reverse(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var params ReverseParams
	// длина тела может быть неизвестна (chunked), пустое тело равнозначно его отсутствию.
	if body := c.Request.Body; body != nil && body != http.NoBody && c.Request.ContentLength != 0 {
		if bindErr := c.ShouldBindJSON(&params); bindErr != nil && !errors.Is(bindErr, io.EOF) {
			_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
			return
		}
	}

	key, ok := idempotencyKey(c, params.IdempotencyKey)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transfer, err := t.transferSvs.ReverseTransfer(reqCtx, service.ReverseArgs{
		OriginalTransferID: id,
		Reason:             domain.TransferReason(params.Reason),
		RefID:              params.RefID,
		IdempotencyKey:     key,
		Note:               params.Note,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransferResponse(transfer))
}

type SplitParams struct {
	BuyerAccountID      uuid.UUID       `json:"buyer_account_id" binding:"required"`
	InstructorAccountID uuid.UUID       `json:"instructor_account_id" binding:"required"`
	PlatformAccountID   uuid.UUID       `json:"platform_account_id" binding:"required"`
	GrossAmount         int64           `json:"gross_amount"`
	PlatformFeeAmount   int64           `json:"platform_fee_amount"`
	Currency            string          `json:"currency" binding:"required,currency"`
	RefID               string          `json:"ref_id" binding:"omitempty,max_bytes=255"`
	IdempotencyKey      string          `json:"idempotency_key" binding:"omitempty,idempotency_key"`
	Metadata            domain.Metadata `json:"metadata"`
}

// Split POST RouteGroup + SplitTransferRoute.
func (t *TransfersHandler) Split(c *gin.Context) {
	var params SplitParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	key, ok := idempotencyKey(c, params.IdempotencyKey)
	if !ok {
		return
	}

	// две независимые транзакции.
	reqCtx, cancel := context.WithTimeout(c, 2*DefaultServiceTimeout)
	defer cancel()

	result, err := t.transferSvs.SplitTransfer(reqCtx, service.SplitArgs{
		BuyerAccountID:      params.BuyerAccountID,
		InstructorAccountID: params.InstructorAccountID,
		PlatformAccountID:   params.PlatformAccountID,
		GrossAmount:         params.GrossAmount,
		PlatformFeeAmount:   params.PlatformFeeAmount,
		Currency:            params.Currency,
		RefID:               params.RefID,
		IdempotencyKey:      key,
		Metadata:            params.Metadata,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &SplitResponse{
		Fee: newLegResponse(result.Fee),
		Net: newLegResponse(result.Net),
	})
}
