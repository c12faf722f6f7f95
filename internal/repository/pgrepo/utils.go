package pgrepo

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// safeConvertUintToInt32 безопасно конвертирует uint в int32. В случае выхода значения за рамки диапазона
// выбрасывает ошибку.
func safeConvertUintToInt32(val uint) (int32, error) {
	if val > uint(math.MaxInt32) {
		return 0, fmt.Errorf("value is out of range: %d", val)
	}
	return int32(val), nil
}

// nullableString превращает указатель из nullable колонки в строку, NULL становится пустой строкой.
func nullableString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidStrings(ids []uuid.UUID) []string {
	res := make([]string, len(ids))
	for i, id := range ids {
		res[i] = id.String()
	}
	return res
}
