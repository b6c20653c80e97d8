package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an exact amount in minor units (paise, cents). All cart and order
// arithmetic stays in int64 minor units; floats appear only in display output.
type Money struct {
	Amount   int64
	Currency currency.Unit
}

func NewMoney(amount int64, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount * int64(qty), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Decimal returns the amount in major units, e.g. 99900 -> 999.00.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -2)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.String(), m.Decimal().StringFixed(2))
}

// ParseAmount converts a major-unit price string ("999.00") into Money without
// going through float64. Rejects more than two fractional digits.
func ParseAmount(s string, unit currency.Unit) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has sub-minor-unit precision", s)
	}

	return Money{Amount: minor.IntPart(), Currency: unit}, nil
}

// ParseCurrency wraps currency.ParseISO with error context.
func ParseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}
