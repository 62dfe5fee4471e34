package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"liquidityPilot/internal/contracts"
)

// gasBufferPercent is added on top of eth_estimateGas.
const gasBufferPercent = 20

// Transact signs and sends a call to `to`, then blocks until it is mined.
// A reverted transaction is returned as a receipt with failed status, not an error.
// Nonces come from the pending pool, so concurrent Transact calls on one
// identity can collide.
//
// The transport may resend eth_sendRawTransaction after a gateway error. A
// resend the node rejects as already known is treated as accepted.
func (c *Client) Transact(ctx context.Context, to common.Address, data []byte, value *big.Int) (*types.Receipt, error) {
	if value == nil {
		value = new(big.Int)
	}

	tx, err := c.buildTx(ctx, to, data, value)
	if err != nil {
		return nil, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}

	if err := c.send(ctx, signed); err != nil {
		return nil, err
	}
	c.logger.Info("tx sent",
		zap.String("tx", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.String("value", value.String()),
		zap.Uint64("nonce", signed.Nonce()),
		zap.Uint64("gas", signed.Gas()),
	)

	waitCtx := ctx
	if c.txTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.txTimeout)
		defer cancel()
	}
	receipt, err := bind.WaitMined(waitCtx, c, signed)
	if err != nil {
		return nil, fmt.Errorf("wait tx %s: %w", signed.Hash().Hex(), err)
	}
	return receipt, nil
}

// Approve authorizes spender to move amount of token from the signing address.
func (c *Client) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	data, err := contracts.PackApprove(spender, amount)
	if err != nil {
		return nil, err
	}
	c.logger.Info("approve",
		zap.String("token", token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount.String()),
	)
	return c.Transact(ctx, token, data, nil)
}

// send submits signed once at the RPC layer. An error is returned only when
// the node does not hold the transaction afterwards.
func (c *Client) send(ctx context.Context, signed *types.Transaction) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.ethClient.SendTransaction(ctx, signed)
	if err == nil {
		return nil
	}
	if isKnownTransaction(err) {
		c.logger.Warn("tx already known to node", zap.String("tx", signed.Hash().Hex()), zap.Error(err))
		return nil
	}
	if waitErr := c.wait(ctx); waitErr == nil {
		if _, _, lookupErr := c.ethClient.TransactionByHash(ctx, signed.Hash()); lookupErr == nil {
			c.logger.Warn("tx accepted despite send error", zap.String("tx", signed.Hash().Hex()), zap.Error(err))
			return nil
		}
	}
	return fmt.Errorf("send tx %s: %w", signed.Hash().Hex(), err)
}

func isKnownTransaction(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") ||
		strings.Contains(msg, "known transaction") ||
		strings.Contains(msg, "already imported")
}

func (c *Client) buildTx(ctx context.Context, to common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	nonce, err := c.ethClient.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	gas, err := c.ethClient.EstimateGas(ctx, ethereum.CallMsg{From: c.address, To: &to, Value: value, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	gas += gas * gasBufferPercent / 100

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	head, err := c.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get head: %w", err)
	}

	if head.BaseFee == nil {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		gasPrice, err := c.ethClient.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
			Data:     data,
		}), nil
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	tip, err := c.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas tip: %w", err)
	}
	feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
	feeCap.Add(feeCap, tip)

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	}), nil
}
