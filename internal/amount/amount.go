// Package amount converts between human-readable decimal amounts and integer
// smallest-unit amounts, and picks deposit sizes from a balance. Nothing here
// feeds floats into transaction math: every result is an integer in wei.
package amount

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of decimals of the native asset.
const NativeDecimals int32 = 18

// ToWei converts a decimal string such as "0.015" into smallest units,
// truncating digits beyond decimals.
func ToWei(input string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(input)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", input, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %q is negative", input)
	}
	return d.Shift(decimals).Truncate(0).BigInt(), nil
}

// FromWei renders a smallest-unit amount as a decimal string.
func FromWei(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}

// Selector picks a deposit as a random percentage of a balance, within
// [MinPercent, MaxPercent].
type Selector struct {
	MinPercent decimal.Decimal
	MaxPercent decimal.Decimal
	Rand       *rand.Rand
}

// Validate checks the percent range.
func (s Selector) Validate() error {
	hundred := decimal.NewFromInt(100)
	if s.MinPercent.IsNegative() || s.MaxPercent.GreaterThan(hundred) {
		return fmt.Errorf("percent range must lie within 0..100")
	}
	if s.MinPercent.GreaterThan(s.MaxPercent) {
		return fmt.Errorf("min percent %s exceeds max percent %s", s.MinPercent, s.MaxPercent)
	}
	if !s.MaxPercent.IsPositive() {
		return fmt.Errorf("max percent must be positive")
	}
	return nil
}

// Select returns floor(balance * p / 100) for a percentage p drawn from the range.
func (s Selector) Select(balance *big.Int) (*big.Int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if balance == nil || balance.Sign() <= 0 {
		return nil, fmt.Errorf("balance is empty")
	}

	percent := s.MinPercent
	if span := s.MaxPercent.Sub(s.MinPercent); span.IsPositive() {
		r := s.Rand
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		percent = percent.Add(span.Mul(decimal.NewFromFloat(r.Float64())))
	}
	percent = percent.Truncate(2)

	out := decimal.NewFromBigInt(balance, 0).Mul(percent).Div(decimal.NewFromInt(100)).Truncate(0).BigInt()
	if out.Sign() == 0 {
		return nil, fmt.Errorf("selected amount rounds to zero for balance %s", balance)
	}
	return out, nil
}
