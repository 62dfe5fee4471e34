package amount

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToWei(t *testing.T) {
	got, err := ToWei("0.015", NativeDecimals)
	if err != nil {
		t.Fatalf("to wei: %v", err)
	}
	if got.String() != "15000000000000000" {
		t.Fatalf("wei mismatch: %s", got)
	}

	got, err = ToWei("1.0000000000000000009", NativeDecimals)
	if err != nil {
		t.Fatalf("to wei: %v", err)
	}
	if got.String() != "1000000000000000000" {
		t.Fatalf("expected truncation, got %s", got)
	}
}

func TestToWeiInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-1"} {
		if _, err := ToWei(input, NativeDecimals); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestFromWei(t *testing.T) {
	value, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := FromWei(value, NativeDecimals); got != "1.5" {
		t.Fatalf("format mismatch: %s", got)
	}
	if got := FromWei(nil, NativeDecimals); got != "0" {
		t.Fatalf("nil format mismatch: %s", got)
	}
}

func TestSelectFixedPercent(t *testing.T) {
	s := Selector{MinPercent: decimal.NewFromInt(10), MaxPercent: decimal.NewFromInt(10)}
	got, err := s.Select(big.NewInt(12345))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got.Int64() != 1234 {
		t.Fatalf("amount mismatch: %s", got)
	}
}

func TestSelectWithinRange(t *testing.T) {
	s := Selector{
		MinPercent: decimal.NewFromInt(10),
		MaxPercent: decimal.NewFromInt(20),
		Rand:       rand.New(rand.NewSource(42)),
	}
	balance, _ := new(big.Int).SetString("1000000000000000000", 10)
	low := new(big.Int).Quo(balance, big.NewInt(10))
	high := new(big.Int).Quo(balance, big.NewInt(5))

	for i := 0; i < 50; i++ {
		got, err := s.Select(balance)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if got.Cmp(low) < 0 || got.Cmp(high) > 0 {
			t.Fatalf("amount %s outside [%s, %s]", got, low, high)
		}
	}
}

func TestSelectRejects(t *testing.T) {
	bad := []Selector{
		{MinPercent: decimal.NewFromInt(30), MaxPercent: decimal.NewFromInt(20)},
		{MinPercent: decimal.NewFromInt(0), MaxPercent: decimal.NewFromInt(0)},
		{MinPercent: decimal.NewFromInt(10), MaxPercent: decimal.NewFromInt(101)},
	}
	for _, s := range bad {
		if _, err := s.Select(big.NewInt(1000)); err == nil {
			t.Fatalf("expected error for %s..%s", s.MinPercent, s.MaxPercent)
		}
	}

	s := Selector{MinPercent: decimal.NewFromInt(1), MaxPercent: decimal.NewFromInt(1)}
	if _, err := s.Select(big.NewInt(0)); err == nil {
		t.Fatalf("expected error for empty balance")
	}
	if _, err := s.Select(big.NewInt(50)); err == nil {
		t.Fatalf("expected error when amount rounds to zero")
	}
}
