package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

const maxIdempotencyKeyBytes = 255

// validateMaxBytes в отличии от тэга max который проверяет длину рун, - проверят длину байт в поле.
func validateMaxBytes(fl validator.FieldLevel) bool {
	param := fl.Param() // получаем значение из тега
	maxBytes, err := strconv.Atoi(param)
	if err != nil {
		return false
	}

	// нужно убедится что значение поля - строка.
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return len([]byte(str)) <= maxBytes
}

// validateIdempotencyKey допускает печатные ASCII символы без пробелов, не длиннее 255 байт.
func validateIdempotencyKey(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return isValidIdempotencyKey(str)
}

func isValidIdempotencyKey(key string) bool {
	if key == "" || len(key) > maxIdempotencyKeyBytes {
		return false
	}
	for i := range len(key) {
		if key[i] <= ' ' || key[i] > '~' {
			return false
		}
	}
	return true
}

// newCurrencyValidator проверяет код валюты по ISO 4217 без учета регистра: сервис сам приводит его
// к верхнему регистру.
func newCurrencyValidator(v *validator.Validate) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return v.Var(domain.NormalizeCurrency(str), "iso4217") == nil
	}
}

func validateAccountKind(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return domain.AccountKind(str).Valid()
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected validator engine %T", binding.Validator.Engine())
	}
	validations := map[string]validator.Func{
		"max_bytes":       validateMaxBytes,
		"idempotency_key": validateIdempotencyKey,
		"currency":        newCurrencyValidator(v),
		"account_kind":    validateAccountKind,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validator registration: %s", err.Error())
		}
	}
	return nil
}
