// Package core provides the sales domain model.
//
// This file contains amount parsing and the ceiling every running total
// must stay under.
package core

import (
	"errors"
	"strconv"
)

// TotalCeiling is the first value a total may not reach (eleven digits).
const TotalCeiling int64 = 10_000_000_000

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountOverflow = errors.New("amount exceeds ten digits")
)

// ParseAmount converts an all-digit string to an amount.
//
// Signs, spaces, separators and empty input are rejected with
// ErrInvalidAmount. Digit strings too long to represent can only ever push a
// total past the ceiling, so they report ErrAmountOverflow.
//
// Examples:
//
//	ParseAmount("1000")   -> 1000, nil
//	ParseAmount("0012")   -> 12, nil
//	ParseAmount("-5")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrAmountOverflow
		}
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// AddAmount returns total+amount, or ErrAmountOverflow when the sum reaches
// TotalCeiling.
func AddAmount(total, amount int64) (int64, error) {
	if amount >= TotalCeiling || total >= TotalCeiling-amount {
		return 0, ErrAmountOverflow
	}
	return total + amount, nil
}
