package service

import (
	"fmt"

	"github.com/fsdevblog/groph-ledger/pkg/uow"
)

type AppServices struct {
	AccountService  *AccountService
	TransferService *TransferService
	AuditService    *AuditService
}

func Factory(unitOfWork uow.UOW, publisher EventPublisher) (*AppServices, error) {
	accountService, accountServiceErr := NewAccountService(unitOfWork)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	transferService, transferServiceErr := NewTransferService(unitOfWork, publisher)
	if transferServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", transferServiceErr.Error())
	}

	auditService, auditServiceErr := NewAuditService(unitOfWork)
	if auditServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", auditServiceErr.Error())
	}

	return &AppServices{
		AccountService:  accountService,
		TransferService: transferService,
		AuditService:    auditService,
	}, nil
}
