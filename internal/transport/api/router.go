package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-ledger/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 5 * time.Second
)

const (
	RouteGroup            = "/api"
	AccountsRoute         = "/accounts"
	AccountRoute          = "/accounts/:id"
	AccountBalanceRoute   = "/accounts/:id/balance"
	AccountTransfersRoute = "/accounts/:id/transfers"
	TransfersRoute        = "/transfers"
	TransferRoute         = "/transfers/:id"
	TransferReversalRoute = "/transfers/:id/reversal"
	SplitTransferRoute    = "/transfers/split"
	LedgerInvariantRoute  = "/ledger/invariant"
	LedgerUnbalancedRoute = "/ledger/unbalanced"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	AccountService  AccountServicer
	TransferService TransferServicer
	AuditService    AuditServicer
}

// New собирает роутер внутреннего API журнала. API предназначен для сервисов-соседей и не требует авторизации.
func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("api router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	accountsHandler := NewAccountsHandler(args.AccountService, args.TransferService)
	transfersHandler := NewTransfersHandler(args.TransferService)
	ledgerHandler := NewLedgerHandler(args.AuditService)

	api := r.Group(RouteGroup)

	api.POST(AccountsRoute, accountsHandler.Create)
	api.GET(AccountRoute, accountsHandler.Show)
	api.GET(AccountBalanceRoute, accountsHandler.Balance)
	api.GET(AccountTransfersRoute, accountsHandler.Transfers)

	api.POST(TransfersRoute, transfersHandler.Create)
	api.POST(SplitTransferRoute, transfersHandler.Split)
	api.GET(TransferRoute, transfersHandler.Show)
	api.POST(TransferReversalRoute, transfersHandler.Reverse)

	api.GET(LedgerInvariantRoute, ledgerHandler.Invariant)
	api.GET(LedgerUnbalancedRoute, ledgerHandler.Unbalanced)
	return r, nil
}
