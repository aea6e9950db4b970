// Package types provides money helpers shared by the domain and the web layer.
package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits stored for prices.
const MoneyScale = 2

// MaxMoney is the largest amount a NUMERIC(15,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999999.99")

// maxMoneyInput bounds the accepted text before any decimal arithmetic.
const maxMoneyInput = 32

// Plain decimal notation only. Exponents like "1e999999999" would make
// rounding allocate an arbitrarily large integer.
var moneyPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseMoney parses user input such as "1500", "1 500,50" or "12.5".
// Empty input parses as zero. The result is rounded to MoneyScale.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if len(s) > maxMoneyInput || !moneyPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid amount %q", truncate(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d.Round(MoneyScale), nil
}

func truncate(s string) string {
	if len(s) > maxMoneyInput {
		return s[:maxMoneyInput] + "..."
	}
	return s
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatMoney renders an amount with two decimals and the currency label.
func FormatMoney(m Money, currency string) string {
	if currency == "" {
		return m.StringFixed(MoneyScale)
	}
	return m.StringFixed(MoneyScale) + " " + currency
}

// Amount marshals Money as a JSON number with two decimals instead of
// decimal's default quoted string.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps m for JSON output.
func NewAmount(m Money) Amount {
	return Amount{m}
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(MoneyScale)), nil
}
