package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultUnbalancedLimit = 100

type LedgerHandler struct {
	auditSvs AuditServicer
}

func NewLedgerHandler(auditSvs AuditServicer) *LedgerHandler {
	return &LedgerHandler{
		auditSvs: auditSvs,
	}
}

type InvariantResponse struct {
	Balanced bool `json:"balanced"`
}

// Invariant GET RouteGroup + LedgerInvariantRoute.
func (l *LedgerHandler) Invariant(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balanced, err := l.auditSvs.VerifyLedgerInvariant(reqCtx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &InvariantResponse{Balanced: balanced})
}

type UnbalancedQuery struct {
	Limit uint `form:"limit" binding:"omitempty,max=1000"`
}

// Unbalanced GET RouteGroup + LedgerUnbalancedRoute. Диагностика: переводы, чьи проводки не сходятся.
func (l *LedgerHandler) Unbalanced(c *gin.Context) {
	var query UnbalancedQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultUnbalancedLimit
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	imbalances, err := l.auditSvs.FindUnbalancedTransfers(reqCtx, query.Limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ImbalanceResponse, len(imbalances))
	for i, imb := range imbalances {
		response[i] = ImbalanceResponse{
			TransferID: imb.TransferID,
			Sum:        imb.Sum,
			Entries:    imb.Entries,
		}
	}

	c.JSON(http.StatusOK, response)
}
