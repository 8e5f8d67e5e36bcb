package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxAmount is 99,999,999.99, the widest price a ten-digit column with two
// decimals holds.
const MaxAmount int64 = 9_999_999_999

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrAmountTooLarge = errors.New("amount exceeds 99999999.99")
)

// Money is an amount in minor units (cents/paise), two decimal places.
type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Parse reads "1500", "1500.5" or "1500.50". More than two decimals is
// rejected, so is anything beyond MaxAmount.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > 2)) {
		return Money{}, ErrInvalidAmount
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > 8 {
		return Money{}, ErrAmountTooLarge
	}
	for len(frac) < 2 {
		frac += "0"
	}

	// at most ten digits, both parses fit
	w, _ := strconv.ParseInt("0"+whole, 10, 64)
	f, _ := strconv.ParseInt(frac, 10, 64)
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return Money{cents: cents}, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewNonNegative is the constructor for prices.
func NewNonNegative(cents int64) (Money, error) {
	switch {
	case cents < 0:
		return Money{}, ErrNegativeAmount
	case cents > MaxAmount:
		return Money{}, ErrAmountTooLarge
	}
	return Money{cents: cents}, nil
}

// Exceeds reports whether the amount is outside what a price may hold.
func (m Money) Exceeds() bool { return m.cents > MaxAmount || m.cents < -MaxAmount }

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) IsNegative() bool { return m.cents < 0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Multiply(times int64) Money {
	return Money{cents: m.cents * times}
}

// String renders the amount with exactly two decimals, e.g. "1500.00".
func (m Money) String() string {
	c := m.cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
