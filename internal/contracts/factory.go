package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// FactoryContract looks up deployed pools by token pair.
type FactoryContract interface {
	Address() common.Address
	GetPool(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error)
}

// Factory is the eth_call binding for the pool factory.
type Factory struct {
	caller  Caller
	address common.Address
}

// NewFactory binds the factory deployed at address.
func NewFactory(caller Caller, address common.Address) *Factory {
	return &Factory{caller: caller, address: address}
}

func (f *Factory) Address() common.Address { return f.address }

// GetPool returns the pool for the pair, or the zero address when none is deployed.
func (f *Factory) GetPool(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error) {
	parsed, err := FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}
	return callAddress(ctx, f.caller, f.address, parsed, "getPool", tokenA, tokenB)
}
