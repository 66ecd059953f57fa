package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// currencyFormat holds the fixed conversion rate from the GBP base price and
// the rendering rules for one display currency. Rates are static
// approximations, not live exchange rates.
type currencyFormat struct {
	rate     float64
	symbol   string
	suffix   bool
	decimals int
}

var currencyFormats = map[string]currencyFormat{
	"GBP": {rate: 1, symbol: "£", decimals: 2},
	"USD": {rate: 1.25, symbol: "$", decimals: 2},
	"EUR": {rate: 1.15, symbol: "€", decimals: 2},
	"DKK": {rate: 8.5, symbol: "kr", suffix: true},
	"NOK": {rate: 13, symbol: "kr", suffix: true},
	"SEK": {rate: 13.5, symbol: "kr", suffix: true},
}

// CurrencyFor returns the display currency for a storefront locale, defaulting
// to GBP for unknown locales.
func (r *Resolver) CurrencyFor(locale string) string {
	if cur, ok := countryCurrencies[strings.ToLower(locale)]; ok {
		return cur
	}
	return "GBP"
}

// FormatPrice converts a base price string like "£9.99" into the target
// currency using its fixed rate and renders it with that currency's symbol
// placement and rounding rule (whole numbers for kr currencies, two decimals
// otherwise). An unparseable amount or unknown currency returns the base
// string unchanged, so a bad price is displayed as-is rather than hidden.
func (r *Resolver) FormatPrice(base, currency string) string {
	format, ok := currencyFormats[strings.ToUpper(currency)]
	if !ok {
		return base
	}

	amount, err := parseAmount(base)
	if err != nil {
		return base
	}

	converted := amount * format.rate

	var rendered string
	if format.decimals == 0 {
		rendered = strconv.FormatFloat(math.Round(converted), 'f', 0, 64)
	} else {
		rendered = strconv.FormatFloat(converted, 'f', format.decimals, 64)
	}

	if format.suffix {
		return fmt.Sprintf("%s %s", rendered, format.symbol)
	}
	return format.symbol + rendered
}

// parseAmount extracts the numeric value from a display price, tolerating a
// leading currency symbol and thousands separators.
func parseAmount(price string) (float64, error) {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return strconv.ParseFloat(b.String(), 64)
}
