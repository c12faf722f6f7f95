package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// abortWithServiceError переводит ошибку сервисного слоя в HTTP статус. Текст ошибок валидации и
// отсутствия записей отдается клиенту, остальные скрываются.
func abortWithServiceError(c *gin.Context, err error) {
	var violation *domain.InvariantViolationError
	switch {
	case errors.As(err, &violation):
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrInsufficientFunds):
		_ = c.AbortWithError(http.StatusPaymentRequired, err).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrValidation):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrRecordNotFound):
		_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrDuplicateKey):
		_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.AbortWithError(http.StatusGatewayTimeout, err).SetType(gin.ErrorTypePrivate)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

// uuidParam читает идентификатор из пути. При ошибке прерывает запрос со статусом 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s: %w", name, err)).
			SetType(gin.ErrorTypePublic)
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey возвращает ключ из тела запроса, а если его там нет - из заголовка Idempotency-Key.
func idempotencyKey(c *gin.Context, fromBody string) (string, bool) {
	if fromBody != "" {
		return fromBody, true
	}
	header := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if header == "" {
		return "", true
	}
	if !isValidIdempotencyKey(header) {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid Idempotency-Key header")).
			SetType(gin.ErrorTypePublic)
		return "", false
	}
	return header, true
}
