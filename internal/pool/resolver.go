package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"liquidityPilot/internal/contracts"
)

// ErrPoolNotFound is returned when the factory has no pool for a pair.
var ErrPoolNotFound = errors.New("pool not found")

// Resolver maps a token pair to its pool via the factory contract.
type Resolver struct {
	factory contracts.FactoryContract
}

func NewResolver(factory contracts.FactoryContract) *Resolver {
	return &Resolver{factory: factory}
}

// Resolve returns the pool address for (tokenA, tokenB). A zero address from
// the factory is reported as ErrPoolNotFound.
func (r *Resolver) Resolve(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error) {
	if r.factory == nil {
		return common.Address{}, fmt.Errorf("factory is nil")
	}
	addr, err := r.factory.GetPool(ctx, tokenA, tokenB)
	if err != nil {
		return common.Address{}, fmt.Errorf("get pool: %w", err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s/%s", ErrPoolNotFound, tokenA.Hex(), tokenB.Hex())
	}
	return addr, nil
}
