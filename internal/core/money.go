// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting them back for display.
package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places amounts are stored with.
const AmountPlaces = 2

// ParseAmount converts a decimal string to a signed amount with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an optional
// leading sign, and performs half-up rounding on the third decimal place.
// Zero is a valid amount. Rounding happens here, before any income or
// expense classification, so 0.004 is a zero amount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("-12,34") -> -12.34, nil
//	ParseAmount("12.345") -> 12.35, nil
//	ParseAmount("12.344") -> 12.34, nil
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	parts := strings.Split(digits, ".")
	if len(parts) > 2 || digits == "." || digits == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
			}
		}
	}

	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(AmountPlaces), nil
}

// ParseNumber converts the text of a JSON number, which may carry an
// exponent (1e2, 1.2E3), to an amount rounded like ParseAmount.
func ParseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(AmountPlaces), nil
}

// MustParseAmount is ParseAmount for literals known to be valid. It panics otherwise.
func MustParseAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatAmount renders an amount with two decimals and an optional currency suffix.
func FormatAmount(d decimal.Decimal, currency string) string {
	out := d.StringFixed(AmountPlaces)
	if currency != "" {
		out += " " + currency
	}
	return out
}
