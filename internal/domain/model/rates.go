package model

import "github.com/shopspring/decimal"

// ExchangeRates maps a currency ticker to the price of one bitcoin in that currency.
type ExchangeRates map[string]decimal.Decimal

// Clone returns an independent copy of the table.
func (r ExchangeRates) Clone() ExchangeRates {
	out := make(ExchangeRates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FiatCurrency is a currency the user can select for display.
type FiatCurrency string

const (
	CurrencyUSD FiatCurrency = "USD"
	CurrencyEUR FiatCurrency = "EUR"
	CurrencyGBP FiatCurrency = "GBP"
	CurrencyJPY FiatCurrency = "JPY"
	CurrencyCHF FiatCurrency = "CHF"
	CurrencyCAD FiatCurrency = "CAD"
	CurrencyAUD FiatCurrency = "AUD"
)

// SupportedCurrencies lists the selectable fiat currencies.
var SupportedCurrencies = []FiatCurrency{
	CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyCHF, CurrencyCAD, CurrencyAUD,
}

// Valid reports whether the currency is supported.
func (c FiatCurrency) Valid() bool {
	for _, s := range SupportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}
