package audit

import "errors"

var ErrLedgerUnbalanced = errors.New("ledger is unbalanced")
