package contracts

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type stubCaller struct {
	parsed  abi.ABI
	outputs map[string][]interface{}
	calls   []string
}

func (s *stubCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(msg.Data) < 4 {
		return nil, fmt.Errorf("short calldata")
	}
	method, err := s.parsed.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	s.calls = append(s.calls, method.Name)
	out, ok := s.outputs[method.Name]
	if !ok {
		return nil, fmt.Errorf("no output for %s", method.Name)
	}
	return method.Outputs.Pack(out...)
}

func TestFactoryGetPool(t *testing.T) {
	parsed, err := FactoryABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	want := common.HexToAddress("0x80115c708E12eDd42E504c1cD52Aea96C547c05c")
	caller := &stubCaller{parsed: parsed, outputs: map[string][]interface{}{"getPool": {want}}}

	factory := NewFactory(caller, common.HexToAddress("0xf2DAd89f2788a8CD54625C60b55cD3d2D0ACa7Cb"))
	got, err := factory.GetPool(context.Background(),
		common.HexToAddress("0x5AEa5775959fBC2557Cc8789bC1bf90A239D9a91"),
		common.HexToAddress("0x493257fD37EDB34451f62EDf8D2a0C418852bA4C"),
	)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if got != want {
		t.Fatalf("pool mismatch: %s != %s", got.Hex(), want.Hex())
	}
}

func TestPoolReads(t *testing.T) {
	parsed, err := PoolABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	owner := common.HexToAddress("0x2222222222222222222222222222222222222222")
	caller := &stubCaller{parsed: parsed, outputs: map[string][]interface{}{
		"totalSupply": {big.NewInt(1000)},
		"getReserves": {big.NewInt(5000), big.NewInt(100)},
		"balanceOf":   {big.NewInt(49)},
	}}
	pool := NewPool(caller, common.HexToAddress("0x1111111111111111111111111111111111111111"))
	ctx := context.Background()

	supply, err := pool.TotalSupply(ctx)
	if err != nil {
		t.Fatalf("total supply: %v", err)
	}
	if supply.Int64() != 1000 {
		t.Fatalf("supply mismatch: %s", supply)
	}

	reserve0, reserve1, err := pool.GetReserves(ctx)
	if err != nil {
		t.Fatalf("reserves: %v", err)
	}
	if reserve0.Int64() != 5000 || reserve1.Int64() != 100 {
		t.Fatalf("reserves mismatch: %s %s", reserve0, reserve1)
	}

	balance, err := pool.BalanceOf(ctx, owner)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Int64() != 49 {
		t.Fatalf("balance mismatch: %s", balance)
	}

	if len(caller.calls) != 3 {
		t.Fatalf("expected 3 calls, got %v", caller.calls)
	}
}

func TestPoolCallError(t *testing.T) {
	parsed, err := PoolABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	caller := &stubCaller{parsed: parsed, outputs: map[string][]interface{}{}}
	pool := NewPool(caller, common.HexToAddress("0x1111111111111111111111111111111111111111"))
	if _, err := pool.TotalSupply(context.Background()); err == nil {
		t.Fatalf("expected error when call fails")
	}
}

func TestPackAddLiquidity2(t *testing.T) {
	parsed, err := RouterABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	poolAddr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")
	payload, err := EncodeRecipient(recipient)
	if err != nil {
		t.Fatalf("encode recipient: %v", err)
	}

	router := NewRouter(common.HexToAddress("0x9B5def958d0f3b6955cBEa4D5B7809b2fb26b059"))
	data, err := router.PackAddLiquidity2(AddLiquidityCall{
		Pool:         poolAddr,
		Inputs:       []TokenInput{{Token: common.Address{}, Amount: big.NewInt(10), UseVault: true}},
		Data:         payload,
		MinLiquidity: big.NewInt(49),
	})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	method := parsed.Methods["addLiquidity2"]
	if !bytes.Equal(data[:4], method.ID) {
		t.Fatalf("selector mismatch")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if args[0].(common.Address) != poolAddr {
		t.Fatalf("pool mismatch")
	}
	if args[3].(*big.Int).Int64() != 49 {
		t.Fatalf("min liquidity mismatch: %v", args[3])
	}
	if !bytes.Equal(args[2].([]byte), payload) {
		t.Fatalf("data payload mismatch")
	}
	if len(args[5].([]byte)) != 0 {
		t.Fatalf("extra data should be empty")
	}
	if args[4].(common.Address) != (common.Address{}) || args[6].(common.Address) != (common.Address{}) {
		t.Fatalf("referral and callback should be zero")
	}
}

func TestPackBurnLiquiditySingle(t *testing.T) {
	parsed, err := RouterABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	router := NewRouter(common.HexToAddress("0x9B5def958d0f3b6955cBEa4D5B7809b2fb26b059"))
	data, err := router.PackBurnLiquiditySingle(BurnLiquidityCall{
		Pool:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Liquidity: big.NewInt(49),
		MinAmount: big.NewInt(9),
	})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	method := parsed.Methods["burnLiquiditySingle"]
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if args[1].(*big.Int).Int64() != 49 || args[3].(*big.Int).Int64() != 9 {
		t.Fatalf("amounts mismatch: %v %v", args[1], args[3])
	}
}

func TestEncodeWithdrawal(t *testing.T) {
	tokenOut := common.HexToAddress("0x5AEa5775959fBC2557Cc8789bC1bf90A239D9a91")
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := EncodeWithdrawal(tokenOut, recipient, WithdrawModeNative)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != 96 {
		t.Fatalf("expected 96 bytes, got %d", len(data))
	}
	if common.BytesToAddress(data[:32]) != tokenOut {
		t.Fatalf("token out mismatch")
	}
	if common.BytesToAddress(data[32:64]) != recipient {
		t.Fatalf("recipient mismatch")
	}
	if data[95] != WithdrawModeNative {
		t.Fatalf("mode mismatch: %d", data[95])
	}
}
