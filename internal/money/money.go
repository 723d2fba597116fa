// Package money parses and formats decimal amounts.
//
// Ledger arithmetic is done on decimal.Decimal values end to end. This
// package is the boundary where user input becomes a Decimal and where a
// Decimal becomes display text.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits shown to users.
const DisplayPlaces = 2

// maxInputLen bounds user input before it reaches the decimal parser.
const maxInputLen = 32

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts user input to a Decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading sign. Exponents, thousands separators and empty input
// are rejected.
//
// Examples:
//
//	Parse("12.34")  -> 12.34
//	Parse("12,34")  -> 12.34
//	Parse("-5")     -> -5
//	Parse("1e3")    -> error
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	dots := 0
	for _, r := range digits {
		switch {
		case r == '.':
			dots++
		case r < '0' || r > '9':
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if dots > 1 || digits == "." {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseOrZero is Parse with empty input meaning zero.
func ParseOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return Parse(s)
}

// Format renders d rounded to DisplayPlaces (e.g., "33.33", "-100.00").
func Format(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}

// Round returns d rounded half away from zero to DisplayPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}
