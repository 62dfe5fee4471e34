package pool

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"liquidityPilot/internal/contracts"
)

type fakeFactory struct {
	pool common.Address
	err  error
}

func (f fakeFactory) Address() common.Address { return common.Address{} }

func (f fakeFactory) GetPool(context.Context, common.Address, common.Address) (common.Address, error) {
	return f.pool, f.err
}

type poolCaller struct {
	outputs map[string][]interface{}
	calls   []string
}

func (c *poolCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	parsed, err := contracts.PoolABI()
	if err != nil {
		return nil, err
	}
	method, err := parsed.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	c.calls = append(c.calls, method.Name)
	out, ok := c.outputs[method.Name]
	if !ok {
		return nil, fmt.Errorf("execution reverted")
	}
	return method.Outputs.Pack(out...)
}

var (
	tokenA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	poolID = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func TestResolve(t *testing.T) {
	resolver := NewResolver(fakeFactory{pool: poolID})
	got, err := resolver.Resolve(context.Background(), tokenA, tokenB)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != poolID {
		t.Fatalf("pool mismatch: %s", got.Hex())
	}
}

func TestResolveZeroAddress(t *testing.T) {
	resolver := NewResolver(fakeFactory{})
	if _, err := resolver.Resolve(context.Background(), tokenA, tokenB); !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestResolvePropagatesRPCError(t *testing.T) {
	rpcErr := errors.New("connection refused")
	resolver := NewResolver(fakeFactory{err: rpcErr})
	_, err := resolver.Resolve(context.Background(), tokenA, tokenB)
	if !errors.Is(err, rpcErr) {
		t.Fatalf("expected rpc error, got %v", err)
	}
	if errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("rpc error must not be reported as pool not found")
	}
}

func TestReadState(t *testing.T) {
	caller := &poolCaller{outputs: map[string][]interface{}{
		"totalSupply": {big.NewInt(1000)},
		"getReserves": {big.NewInt(250000), big.NewInt(100)},
	}}
	state, err := NewReader(caller).ReadState(context.Background(), poolID)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if state.TotalSupply.Int64() != 1000 || state.ReserveNative().Int64() != 100 || state.Reserve0.Int64() != 250000 {
		t.Fatalf("state mismatch: %+v", state)
	}
	if len(caller.calls) != 2 || caller.calls[0] != "totalSupply" || caller.calls[1] != "getReserves" {
		t.Fatalf("unexpected call order: %v", caller.calls)
	}
}

func TestReadStateReservesError(t *testing.T) {
	caller := &poolCaller{outputs: map[string][]interface{}{
		"totalSupply": {big.NewInt(1000)},
	}}
	if _, err := NewReader(caller).ReadState(context.Background(), poolID); err == nil {
		t.Fatalf("expected reserves error")
	}
}

func TestShareBalance(t *testing.T) {
	caller := &poolCaller{outputs: map[string][]interface{}{
		"balanceOf": {big.NewInt(49)},
	}}
	balance, err := NewReader(caller).ShareBalance(context.Background(), poolID, tokenA)
	if err != nil {
		t.Fatalf("share balance: %v", err)
	}
	if balance.Int64() != 49 {
		t.Fatalf("balance mismatch: %s", balance)
	}
}
