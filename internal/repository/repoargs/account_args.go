package repoargs

import "github.com/fsdevblog/groph-ledger/internal/domain"

type AccountGetOrCreate struct {
	OwnerID  string
	Kind     domain.AccountKind
	Currency string
}
