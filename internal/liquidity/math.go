package liquidity

import (
	"fmt"
	"math/big"
)

// DefaultSlippageBps is the 2% tolerance applied to every minimum-output bound.
const DefaultSlippageBps uint32 = 200

const bpsDenominator = 10000

var (
	bigTwo = big.NewInt(2)
	bigBps = big.NewInt(bpsDenominator)
)

// MinSharesOut bounds the pool shares minted for a single-sided native deposit:
//
//	floor(amount * totalSupply / reserveNative / 2 * (1 - slippage))
//
// Half the deposit is swapped internally by the router, so only half its value
// is priced into shares. The product is taken before the single division.
func MinSharesOut(amount, totalSupply, reserveNative *big.Int, slippageBps uint32) (*big.Int, error) {
	if err := checkInputs(slippageBps, amount, totalSupply, reserveNative); err != nil {
		return nil, err
	}
	if reserveNative.Sign() == 0 {
		return nil, fmt.Errorf("%w: native reserve is zero", ErrInsufficientLiquidity)
	}

	num := new(big.Int).Mul(amount, totalSupply)
	num.Mul(num, keepFactor(slippageBps))
	den := new(big.Int).Mul(reserveNative, bigTwo)
	den.Mul(den, bigBps)
	return num.Quo(num, den), nil
}

// MinNativeOut bounds the native asset returned when burning shares into a single asset:
//
//	floor(shares * reserveNative * 2 / totalSupply * (1 - slippage))
func MinNativeOut(shares, totalSupply, reserveNative *big.Int, slippageBps uint32) (*big.Int, error) {
	if err := checkInputs(slippageBps, shares, totalSupply, reserveNative); err != nil {
		return nil, err
	}
	if totalSupply.Sign() == 0 {
		return nil, fmt.Errorf("%w: total supply is zero", ErrInsufficientLiquidity)
	}

	num := new(big.Int).Mul(shares, reserveNative)
	num.Mul(num, bigTwo)
	num.Mul(num, keepFactor(slippageBps))
	den := new(big.Int).Mul(totalSupply, bigBps)
	return num.Quo(num, den), nil
}

func keepFactor(slippageBps uint32) *big.Int {
	return big.NewInt(int64(bpsDenominator - slippageBps))
}

func checkInputs(slippageBps uint32, values ...*big.Int) error {
	if slippageBps >= bpsDenominator {
		return fmt.Errorf("slippage %d bps out of range", slippageBps)
	}
	for _, v := range values {
		if v == nil {
			return fmt.Errorf("nil amount")
		}
		if v.Sign() < 0 {
			return fmt.Errorf("negative amount %s", v)
		}
	}
	return nil
}
