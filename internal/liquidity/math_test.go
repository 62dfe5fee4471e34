package liquidity

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinSharesOutScenario(t *testing.T) {
	got, err := MinSharesOut(big.NewInt(10), big.NewInt(1000), big.NewInt(100), DefaultSlippageBps)
	require.NoError(t, err)
	require.Equal(t, int64(49), got.Int64())
}

func TestMinNativeOutScenario(t *testing.T) {
	got, err := MinNativeOut(big.NewInt(49), big.NewInt(1000), big.NewInt(100), DefaultSlippageBps)
	require.NoError(t, err)
	require.Equal(t, int64(9), got.Int64())
}

func TestMinOutZeroDenominator(t *testing.T) {
	_, err := MinSharesOut(big.NewInt(10), big.NewInt(1000), big.NewInt(0), DefaultSlippageBps)
	require.True(t, errors.Is(err, ErrInsufficientLiquidity))

	_, err = MinNativeOut(big.NewInt(49), big.NewInt(0), big.NewInt(100), DefaultSlippageBps)
	require.True(t, errors.Is(err, ErrInsufficientLiquidity))
}

func TestMinOutRejectsBadInputs(t *testing.T) {
	_, err := MinSharesOut(nil, big.NewInt(1), big.NewInt(1), DefaultSlippageBps)
	require.Error(t, err)

	_, err = MinSharesOut(big.NewInt(-1), big.NewInt(1), big.NewInt(1), DefaultSlippageBps)
	require.Error(t, err)

	_, err = MinNativeOut(big.NewInt(1), big.NewInt(1), big.NewInt(1), 10000)
	require.Error(t, err)
}

// floorRat computes floor(num/den) over exact rationals for comparison.
func floorRat(r *big.Rat) *big.Int {
	return new(big.Int).Quo(r.Num(), r.Denom())
}

func TestMinSharesOutMatchesExactFormula(t *testing.T) {
	cases := [][3]string{
		{"1000000000000000000", "3162277660168379332", "52000000000000000000"},
		{"7", "13", "3"},
		{"123456789012345678", "999999999999999999999", "424242424242424242424"},
		{"1", "1", "1000000000000000000"},
	}
	keep := big.NewRat(98, 100)
	for _, c := range cases {
		amount, _ := new(big.Int).SetString(c[0], 10)
		supply, _ := new(big.Int).SetString(c[1], 10)
		reserve, _ := new(big.Int).SetString(c[2], 10)

		exact := new(big.Rat).SetFrac(new(big.Int).Mul(amount, supply), new(big.Int).Mul(reserve, big.NewInt(2)))
		exact.Mul(exact, keep)

		got, err := MinSharesOut(amount, supply, reserve, DefaultSlippageBps)
		require.NoError(t, err)
		require.Equal(t, floorRat(exact).String(), got.String())
		require.True(t, got.Sign() >= 0)
	}
}

func TestRoundTripStaysWithinTolerance(t *testing.T) {
	supply, _ := new(big.Int).SetString("1000000000000000000000", 10)
	reserve, _ := new(big.Int).SetString("100000000000000000000", 10)
	deposit, _ := new(big.Int).SetString("1000000000000000000", 10)

	shares, err := MinSharesOut(deposit, supply, reserve, DefaultSlippageBps)
	require.NoError(t, err)

	back, err := MinNativeOut(shares, supply, reserve, DefaultSlippageBps)
	require.NoError(t, err)

	require.True(t, back.Cmp(deposit) <= 0, "withdrawal bound must not exceed the deposit")
	floor := new(big.Int).Mul(deposit, big.NewInt(96))
	floor.Quo(floor, big.NewInt(100))
	require.True(t, back.Cmp(floor) >= 0, "round trip lost more than the two slippage guards: %s", back)
}
