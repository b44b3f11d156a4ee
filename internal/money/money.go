package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an exact decimal amount. The zero value is zero.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New wraps a decimal value.
func New(d decimal.Decimal) Money {
	return Money{amount: d}
}

// FromCents builds an amount from minor units.
func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

// Parse reads a decimal string such as "9.99".
func Parse(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return Money{amount: d}, nil
}

// MustParse behaves like Parse but panics on error. Useful for tests and fixed tables.
func MustParse(value string) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }

func (m Money) Sub(o Money) Money { return Money{amount: m.amount.Sub(o.amount)} }

func (m Money) Neg() Money { return Money{amount: m.amount.Neg()} }

// Times multiplies the amount by an integer quantity.
func (m Money) Times(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns percent/100 of the amount. Division by 100 is a decimal shift, so it is exact.
func (m Money) Percent(percent decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(percent).Shift(-2)}
}

// Min returns the smaller of the two amounts.
func (m Money) Min(o Money) Money {
	if o.amount.LessThan(m.amount) {
		return o
	}
	return m
}

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsNegative() bool { return m.amount.IsNegative() }

func (m Money) Cmp(o Money) int { return m.amount.Cmp(o.amount) }

// Equal compares by value, so 6 and 6.00 are equal.
func (m Money) Equal(o Money) bool { return m.amount.Equal(o.amount) }

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool { return m.amount.LessThan(o.amount) }

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Pad renders the amount with two decimals right-justified in width characters.
func (m Money) Pad(width int) string {
	return fmt.Sprintf("%*s", width, m.String())
}

// ValidPercent reports whether percent lies within [0, 100].
func ValidPercent(percent decimal.Decimal) bool {
	return !percent.IsNegative() && percent.LessThanOrEqual(hundred)
}
