package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Withdrawal modes understood by burnLiquiditySingle.
const (
	WithdrawModeVault   uint8 = 0
	WithdrawModeNative  uint8 = 1
	WithdrawModeWrapped uint8 = 2
)

// TokenInput is one deposit leg of addLiquidity2. A zero Token with UseVault
// set means the leg is paid in the native asset attached as tx value.
type TokenInput struct {
	Token    common.Address
	Amount   *big.Int
	UseVault bool
}

// AddLiquidityCall carries the addLiquidity2 arguments.
type AddLiquidityCall struct {
	Pool         common.Address
	Inputs       []TokenInput
	Data         []byte
	MinLiquidity *big.Int
	Referral     common.Address
	ExtraData    []byte
	Callback     common.Address
}

// BurnLiquidityCall carries the burnLiquiditySingle arguments.
type BurnLiquidityCall struct {
	Pool      common.Address
	Liquidity *big.Int
	Data      []byte
	MinAmount *big.Int
	Referral  common.Address
	ExtraData []byte
}

// RouterContract builds calldata for the liquidity router.
type RouterContract interface {
	Address() common.Address
	PackAddLiquidity2(call AddLiquidityCall) ([]byte, error)
	PackBurnLiquiditySingle(call BurnLiquidityCall) ([]byte, error)
}

// Router is the calldata binding for the router contract.
type Router struct {
	address common.Address
}

// NewRouter binds the router deployed at address.
func NewRouter(address common.Address) *Router {
	return &Router{address: address}
}

func (r *Router) Address() common.Address { return r.address }

func (r *Router) PackAddLiquidity2(call AddLiquidityCall) ([]byte, error) {
	parsed, err := RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}
	data, err := parsed.Pack("addLiquidity2",
		call.Pool,
		call.Inputs,
		nonNilBytes(call.Data),
		call.MinLiquidity,
		call.Referral,
		nonNilBytes(call.ExtraData),
		call.Callback,
	)
	if err != nil {
		return nil, fmt.Errorf("pack addLiquidity2: %w", err)
	}
	return data, nil
}

func (r *Router) PackBurnLiquiditySingle(call BurnLiquidityCall) ([]byte, error) {
	parsed, err := RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}
	data, err := parsed.Pack("burnLiquiditySingle",
		call.Pool,
		call.Liquidity,
		nonNilBytes(call.Data),
		call.MinAmount,
		call.Referral,
		nonNilBytes(call.ExtraData),
	)
	if err != nil {
		return nil, fmt.Errorf("pack burnLiquiditySingle: %w", err)
	}
	return data, nil
}

var (
	addressType, _ = abi.NewType("address", "", nil)
	uint8Type, _   = abi.NewType("uint8", "", nil)
)

// EncodeRecipient encodes the deposit data payload `(address)`.
func EncodeRecipient(recipient common.Address) ([]byte, error) {
	args := abi.Arguments{{Type: addressType}}
	data, err := args.Pack(recipient)
	if err != nil {
		return nil, fmt.Errorf("encode recipient: %w", err)
	}
	return data, nil
}

// EncodeWithdrawal encodes the burn data payload `(address tokenOut, address to, uint8 mode)`.
func EncodeWithdrawal(tokenOut, recipient common.Address, mode uint8) ([]byte, error) {
	args := abi.Arguments{{Type: addressType}, {Type: addressType}, {Type: uint8Type}}
	data, err := args.Pack(tokenOut, recipient, mode)
	if err != nil {
		return nil, fmt.Errorf("encode withdrawal: %w", err)
	}
	return data, nil
}

func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
