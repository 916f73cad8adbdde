package utils

import (
	"fmt"
	"math"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
}

func FormatCurrency(amount float64, currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		currency = SupportedCurrencies["USD"]
	}

	amount = RoundCurrency(amount, currencyCode)

	// Format based on currency
	switch currencyCode {
	case "JPY", "KRW": // Currencies without decimal places
		return fmt.Sprintf("%s%.0f", currency.Symbol, amount)
	default:
		return fmt.Sprintf("%s%.2f", currency.Symbol, amount)
	}
}

func GetCurrencySymbol(currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		return "$"
	}
	return currency.Symbol
}

func ValidateCurrencyCode(code string) bool {
	_, exists := SupportedCurrencies[code]
	return exists
}

// RoundCurrency rounds half away from zero to the currency's conventional
// number of decimal places.
func RoundCurrency(amount float64, currencyCode string) float64 {
	switch currencyCode {
	case "JPY", "KRW": // Currencies without decimal places
		return math.Round(amount)
	default:
		return math.Round(amount*100) / 100
	}
}
