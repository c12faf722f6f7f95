package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
)

// convertErr оборачивает ошибку pgx в доменную с префиксом `[repository/<операция>]`.
// Нарушение уникальности (повтор ключа идемпотентности перевода или тройки владелец/вид/валюта счёта)
// становится domain.ErrDuplicateKey: по нему сервис отдаёт ранее записанный перевод или существующий счёт.
// Имя нарушенного ограничения попадает в текст ошибки.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	op := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", op, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("[repository/%s] %w: %s", op, domain.ErrUnknown, err.Error())
	}

	kind := domain.ErrUnknown
	if pgErr.Code == uniqueViolationCode {
		kind = domain.ErrDuplicateKey
	}
	return fmt.Errorf("[repository/%s] %w: %s (%s)", op, kind, pgErr.Message, pgErr.ConstraintName)
}
