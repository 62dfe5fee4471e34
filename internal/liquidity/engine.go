package liquidity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"liquidityPilot/internal/contracts"
	"liquidityPilot/internal/pool"
	"liquidityPilot/internal/registry"
)

// ChainClient is the signing chain connection the engine drives. Approve and
// Transact block until the transaction is mined and return its receipt.
type ChainClient interface {
	contracts.Caller
	Address() common.Address
	Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Receipt, error)
	Transact(ctx context.Context, to common.Address, data []byte, value *big.Int) (*types.Receipt, error)
}

// Config configures an Engine.
type Config struct {
	Chain       registry.ChainConfig
	SlippageBps uint32
}

// Result describes one deposit or withdraw run. It is returned on failure too,
// filled up to the stage that was reached.
type Result struct {
	Op         Operation
	Pool       common.Address
	Stage      Stage
	Amount     *big.Int
	MinOut     *big.Int
	State      *pool.State
	ApprovalTx common.Hash
	TxHash     common.Hash
	Receipt    *types.Receipt
}

// Engine provides and withdraws single-sided native liquidity. Runs are not
// synchronized: callers must keep one run in flight per identity and pool.
type Engine struct {
	client      ChainClient
	chain       registry.ChainConfig
	resolver    *pool.Resolver
	reader      *pool.Reader
	router      contracts.RouterContract
	slippageBps uint32
	logger      *zap.Logger
}

// NewEngine binds the factory and router from cfg.Chain.
func NewEngine(cfg Config, client ChainClient, logger *zap.Logger) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	if err := cfg.Chain.Validate(); err != nil {
		return nil, err
	}
	if cfg.SlippageBps >= bpsDenominator {
		return nil, fmt.Errorf("slippage %d bps out of range", cfg.SlippageBps)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		client:      client,
		chain:       cfg.Chain,
		resolver:    pool.NewResolver(contracts.NewFactory(client, cfg.Chain.PoolFactory)),
		reader:      pool.NewReader(client),
		router:      contracts.NewRouter(cfg.Chain.Router),
		slippageBps: cfg.SlippageBps,
		logger:      logger.With(zap.String("chain", cfg.Chain.Name)),
	}, nil
}

// Deposit adds nativeAmount (in wei) of the native asset to the (tokenA, tokenB)
// pool as a single-sided deposit.
func (e *Engine) Deposit(ctx context.Context, tokenA, tokenB string, nativeAmount *big.Int) (*Result, error) {
	res := &Result{Op: OpDeposit, Stage: StageIdle}
	if nativeAmount == nil || nativeAmount.Sign() <= 0 {
		return e.fail(res, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount))
	}
	res.Amount = new(big.Int).Set(nativeAmount)

	_, _, err := e.resolvePool(ctx, res, tokenA, tokenB)
	if err != nil {
		return e.fail(res, err)
	}

	state, err := e.readState(ctx, res)
	if err != nil {
		return e.fail(res, err)
	}

	minShares, err := MinSharesOut(nativeAmount, state.TotalSupply, state.ReserveNative(), e.slippageBps)
	if err != nil {
		return e.fail(res, err)
	}
	res.MinOut = minShares
	e.advance(res, StageAmountComputed, zap.String("amount", nativeAmount.String()), zap.String("min_shares_out", minShares.String()))

	recipient, err := contracts.EncodeRecipient(e.client.Address())
	if err != nil {
		return e.fail(res, err)
	}
	data, err := e.router.PackAddLiquidity2(contracts.AddLiquidityCall{
		Pool: res.Pool,
		Inputs: []contracts.TokenInput{
			{Token: common.Address{}, Amount: nativeAmount, UseVault: true},
		},
		Data:         recipient,
		MinLiquidity: minShares,
	})
	if err != nil {
		return e.fail(res, err)
	}

	if err := e.submit(ctx, res, data, nativeAmount); err != nil {
		return e.fail(res, err)
	}
	return res, nil
}

// Withdraw burns the caller's entire pool-share balance into the native asset.
// The router is approved for the full balance before the burn is built.
func (e *Engine) Withdraw(ctx context.Context, tokenA, tokenB string) (*Result, error) {
	res := &Result{Op: OpWithdraw, Stage: StageIdle}

	tokenOut, _, err := e.resolvePool(ctx, res, tokenA, tokenB)
	if err != nil {
		return e.fail(res, err)
	}

	owner := e.client.Address()
	shares, err := e.reader.ShareBalance(ctx, res.Pool, owner)
	if err != nil {
		return e.fail(res, err)
	}
	if shares.Sign() == 0 {
		return e.fail(res, fmt.Errorf("%w: no pool shares held by %s", ErrInsufficientLiquidity, owner.Hex()))
	}
	res.Amount = shares

	state, err := e.readState(ctx, res)
	if err != nil {
		return e.fail(res, err)
	}

	minNative, err := MinNativeOut(shares, state.TotalSupply, state.ReserveNative(), e.slippageBps)
	if err != nil {
		return e.fail(res, err)
	}
	res.MinOut = minNative
	e.advance(res, StageAmountComputed, zap.String("shares", shares.String()), zap.String("min_native_out", minNative.String()))

	receipt, err := e.client.Approve(ctx, res.Pool, e.router.Address(), shares)
	if err != nil {
		return e.fail(res, fmt.Errorf("%w: %w", ErrApprovalFailed, err))
	}
	res.ApprovalTx = receipt.TxHash
	if receipt.Status != types.ReceiptStatusSuccessful {
		return e.fail(res, fmt.Errorf("%w: approval %s reverted", ErrApprovalFailed, receipt.TxHash.Hex()))
	}
	e.advance(res, StageApproved, zap.String("approval_tx", receipt.TxHash.Hex()))

	burnData, err := contracts.EncodeWithdrawal(tokenOut, owner, contracts.WithdrawModeNative)
	if err != nil {
		return e.fail(res, err)
	}
	data, err := e.router.PackBurnLiquiditySingle(contracts.BurnLiquidityCall{
		Pool:      res.Pool,
		Liquidity: shares,
		Data:      burnData,
		MinAmount: minNative,
	})
	if err != nil {
		return e.fail(res, err)
	}

	if err := e.submit(ctx, res, data, nil); err != nil {
		return e.fail(res, err)
	}
	return res, nil
}

func (e *Engine) resolvePool(ctx context.Context, res *Result, tokenA, tokenB string) (common.Address, common.Address, error) {
	addrA, err := e.chain.Token(tokenA)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	addrB, err := e.chain.Token(tokenB)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}

	poolAddr, err := e.resolver.Resolve(ctx, addrA, addrB)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	res.Pool = poolAddr
	e.advance(res, StagePoolResolved, zap.String("token_a", tokenA), zap.String("token_b", tokenB))
	return addrA, addrB, nil
}

func (e *Engine) readState(ctx context.Context, res *Result) (pool.State, error) {
	state, err := e.reader.ReadState(ctx, res.Pool)
	if err != nil {
		return pool.State{}, err
	}
	res.State = &state
	e.advance(res, StageStateRead,
		zap.String("total_supply", state.TotalSupply.String()),
		zap.String("reserve_native", state.ReserveNative().String()),
	)
	return state, nil
}

func (e *Engine) submit(ctx context.Context, res *Result, data []byte, value *big.Int) error {
	e.advance(res, StageSubmitted, zap.String("router", e.router.Address().Hex()))

	receipt, err := e.client.Transact(ctx, e.router.Address(), data, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	res.TxHash = receipt.TxHash
	res.Receipt = receipt
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s reverted", ErrTransactionFailed, receipt.TxHash.Hex())
	}

	e.advance(res, StageConfirmed,
		zap.String("tx", receipt.TxHash.Hex()),
		zap.Uint64("gas_used", receipt.GasUsed),
	)
	return nil
}

func (e *Engine) advance(res *Result, stage Stage, fields ...zap.Field) {
	res.Stage = stage
	base := []zap.Field{zap.String("op", string(res.Op)), zap.String("stage", string(stage))}
	if res.Pool != (common.Address{}) {
		base = append(base, zap.String("pool", res.Pool.Hex()))
	}
	e.logger.Info("liquidity stage", append(base, fields...)...)
}

func (e *Engine) fail(res *Result, err error) (*Result, error) {
	opErr := &OperationError{Op: res.Op, Stage: res.Stage, Err: err}
	res.Stage = StageFailed
	e.logger.Warn("liquidity operation failed",
		zap.String("op", string(res.Op)),
		zap.String("last_stage", string(opErr.Stage)),
		zap.Error(err),
	)
	return res, opErr
}
