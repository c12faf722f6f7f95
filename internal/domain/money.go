package domain

import "github.com/shopspring/decimal"

// currencyExponents число знаков после запятой для валют, отличных от стандартных двух.
var currencyExponents = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"CLP": 0,
	"ISK": 0,
	"BHD": 3,
	"KWD": 3,
	"JOD": 3,
	"OMR": 3,
	"TND": 3,
}

const defaultCurrencyExponent int32 = 2

// CurrencyExponent количество минорных разрядов валюты.
func CurrencyExponent(currency string) int32 {
	if exp, ok := currencyExponents[NormalizeCurrency(currency)]; ok {
		return exp
	}
	return defaultCurrencyExponent
}

// MinorToMajor переводит сумму в минорных единицах (центах) в мажорные. Используется только для отображения,
// вся арифметика леджера целочисленная.
func MinorToMajor(amount int64, currency string) decimal.Decimal {
	return decimal.New(amount, -CurrencyExponent(currency))
}
