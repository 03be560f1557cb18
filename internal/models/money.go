package models

import (
	"database/sql/driver"
	"math"

	"github.com/shopspring/decimal"
)

// Direction tells whether an entry puts money into the fund or takes it out.
type Direction string

const (
	DirectionDeposit Direction = "deposit"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionDeposit || d == DirectionExpense
}

// Money is a non-negative amount in baht. The direction of the owning entry
// decides the sign when amounts are aggregated; Money itself is always a
// magnitude.
type Money struct {
	amount decimal.Decimal
}

// NewMoney builds a Money from a float input (amounts arrive from forms as
// plain numbers). Negative, NaN and infinite inputs are rejected. Zero is
// allowed here because forms pass through zero while being edited; the
// approval rules refuse to settle a zero amount.
func NewMoney(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, ErrInvalidAmount
	}
	if v < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: decimal.NewFromFloat(v)}, nil
}

// MoneyFromDecimal wraps an already-parsed decimal, rejecting negatives.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: d}, nil
}

// Decimal returns the magnitude.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the magnitude is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the magnitude is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Signed returns the amount with the sign implied by the direction:
// positive for deposits, negative for expenses.
func (m Money) Signed(d Direction) decimal.Decimal {
	if d == DirectionExpense {
		return m.amount.Neg()
	}
	return m.amount
}

// Add returns the sum of two magnitudes.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON renders the magnitude as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON parses a JSON number, rejecting negatives.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalidAmount
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
