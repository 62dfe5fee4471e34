package pool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"liquidityPilot/internal/contracts"
)

// State is a point-in-time view of a pool. The supply and reserves come from
// two separate eth_call requests and may straddle a block boundary.
type State struct {
	Address     common.Address
	TotalSupply *big.Int
	Reserve0    *big.Int
	Reserve1    *big.Int
}

// ReserveNative returns the reserve of the native asset, which the pool
// reports second.
func (s State) ReserveNative() *big.Int {
	return s.Reserve1
}

// Reader reads live pool state. Nothing is cached; every call hits the chain.
type Reader struct {
	caller contracts.Caller
}

func NewReader(caller contracts.Caller) *Reader {
	return &Reader{caller: caller}
}

// Bind returns the pool binding for address.
func (r *Reader) Bind(address common.Address) contracts.PoolContract {
	return contracts.NewPool(r.caller, address)
}

// ReadState reads total supply and then the reserve pair.
func (r *Reader) ReadState(ctx context.Context, address common.Address) (State, error) {
	p := r.Bind(address)

	supply, err := p.TotalSupply(ctx)
	if err != nil {
		return State{}, fmt.Errorf("read total supply: %w", err)
	}
	reserve0, reserve1, err := p.GetReserves(ctx)
	if err != nil {
		return State{}, fmt.Errorf("read reserves: %w", err)
	}

	return State{
		Address:     address,
		TotalSupply: supply,
		Reserve0:    reserve0,
		Reserve1:    reserve1,
	}, nil
}

// ShareBalance reads the pool-share balance held by owner.
func (r *Reader) ShareBalance(ctx context.Context, address, owner common.Address) (*big.Int, error) {
	balance, err := r.Bind(address).BalanceOf(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("read share balance: %w", err)
	}
	return balance, nil
}
