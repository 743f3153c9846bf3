// Package types provides common value types used across RoundLedger.
package types

import (
	"fmt"
)

// Tokens represents a whole-token amount.
// All arithmetic is integer-only — the ledger schema stores token balances
// as whole numbers and fractional tokens do not exist.
//
// A Tokens value is a magnitude or a balance depending on context: ledger
// entry values are non-negative magnitudes whose direction is carried by the
// entry kind, while balances may go negative when a debit overdraws.
type Tokens int64

// Add returns the sum of two token amounts.
func (t Tokens) Add(other Tokens) Tokens { return t + other }

// Sub returns the difference of two token amounts.
func (t Tokens) Sub(other Tokens) Tokens { return t - other }

// Neg returns the negated amount.
func (t Tokens) Neg() Tokens { return -t }

// Abs returns the absolute value.
func (t Tokens) Abs() Tokens {
	if t < 0 {
		return -t
	}
	return t
}

// IsZero returns true if the amount is zero.
func (t Tokens) IsZero() bool { return t == 0 }

// IsPositive returns true if the amount is greater than zero.
func (t Tokens) IsPositive() bool { return t > 0 }

// IsNegative returns true if the amount is less than zero.
func (t Tokens) IsNegative() bool { return t < 0 }

// Int64 returns the raw amount.
func (t Tokens) Int64() int64 { return int64(t) }

// String returns a human-readable representation, e.g. "25 tokens".
func (t Tokens) String() string {
	if t == 1 || t == -1 {
		return fmt.Sprintf("%d token", int64(t))
	}
	return fmt.Sprintf("%d tokens", int64(t))
}
