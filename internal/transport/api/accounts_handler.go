package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

type AccountsHandler struct {
	accountSvs  AccountServicer
	transferSvs TransferServicer
}

func NewAccountsHandler(accountSvs AccountServicer, transferSvs TransferServicer) *AccountsHandler {
	return &AccountsHandler{
		accountSvs:  accountSvs,
		transferSvs: transferSvs,
	}
}

type CreateAccountParams struct {
	OwnerID  string `json:"owner_id" binding:"required,max_bytes=255"`
	Kind     string `json:"kind" binding:"required,account_kind"`
	Currency string `json:"currency" binding:"required,currency"`
}

// Create POST RouteGroup + AccountsRoute. Повторный вызов с той же тройкой (owner, kind, currency)
// возвращает тот же счет.
func (a *AccountsHandler) Create(c *gin.Context) {
	var params CreateAccountParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := a.accountSvs.GetOrCreateAccount(
		reqCtx,
		params.OwnerID,
		domain.AccountKind(params.Kind),
		params.Currency,
	)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// Show GET RouteGroup + AccountRoute.
func (a *AccountsHandler) Show(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := a.accountSvs.GetAccount(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// Balance GET RouteGroup + AccountBalanceRoute.
func (a *AccountsHandler) Balance(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := a.accountSvs.GetBalance(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{
		AccountID:   balance.AccountID,
		Currency:    balance.Currency,
		Amount:      balance.Amount,
		AmountMajor: domain.MinorToMajor(balance.Amount, balance.Currency),
	})
}

type HistoryQuery struct {
	// Limit 0 означает лимит по умолчанию, значения больше максимума урезаются сервисом.
	Limit uint `form:"limit"`
}

// Transfers GET RouteGroup + AccountTransfersRoute. История переводов счета, новые первыми.
func (a *AccountsHandler) Transfers(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var query HistoryQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transfers, err := a.transferSvs.ListAccountTransfers(reqCtx, id, query.Limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]TransferResponse, len(transfers))
	for i := range transfers {
		response[i] = newTransferResponse(&transfers[i])
	}

	c.JSON(http.StatusOK, response)
}
