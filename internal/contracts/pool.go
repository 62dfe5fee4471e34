package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PoolContract reads pool share supply, reserves and balances.
type PoolContract interface {
	Address() common.Address
	TotalSupply(ctx context.Context) (*big.Int, error)
	GetReserves(ctx context.Context) (*big.Int, *big.Int, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
}

// Pool is the eth_call binding for a single pool contract.
type Pool struct {
	caller  Caller
	address common.Address
}

// NewPool binds the pool deployed at address.
func NewPool(caller Caller, address common.Address) *Pool {
	return &Pool{caller: caller, address: address}
}

func (p *Pool) Address() common.Address { return p.address }

func (p *Pool) TotalSupply(ctx context.Context) (*big.Int, error) {
	parsed, err := PoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}
	return callBigInt(ctx, p.caller, p.address, parsed, "totalSupply")
}

// GetReserves returns (reserve0, reserve1) in the pool's token order.
func (p *Pool) GetReserves(ctx context.Context) (*big.Int, *big.Int, error) {
	parsed, err := PoolABI()
	if err != nil {
		return nil, nil, fmt.Errorf("parse pool abi: %w", err)
	}
	values, err := callMethod(ctx, p.caller, p.address, parsed, "getReserves")
	if err != nil {
		return nil, nil, err
	}
	if len(values) != 2 {
		return nil, nil, fmt.Errorf("getReserves return size %d", len(values))
	}
	reserve0, err := asBigInt(values[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return nil, nil, fmt.Errorf("reserve1: %w", err)
	}
	return reserve0, reserve1, nil
}

func (p *Pool) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	parsed, err := PoolABI()
	if err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}
	return callBigInt(ctx, p.caller, p.address, parsed, "balanceOf", owner)
}

// Tokens returns token0 and token1 of the pool.
func (p *Pool) Tokens(ctx context.Context) (common.Address, common.Address, error) {
	parsed, err := PoolABI()
	if err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("parse pool abi: %w", err)
	}
	token0, err := callAddress(ctx, p.caller, p.address, parsed, "token0")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	token1, err := callAddress(ctx, p.caller, p.address, parsed, "token1")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return token0, token1, nil
}
