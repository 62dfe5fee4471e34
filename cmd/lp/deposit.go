package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityPilot/internal/amount"
	"liquidityPilot/internal/liquidity"
)

func runDeposit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = a.deposit()
	return err
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withdraw()
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.deposit(); err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		ok, err := confirmWithdraw()
		if err != nil {
			return err
		}
		if !ok {
			printOK("position kept")
			return nil
		}
	}
	return a.withdraw()
}

// depositAmount returns the configured amount, or a random share of the
// native balance when none is set.
func (a *app) depositAmount() (*big.Int, error) {
	if a.cfg.Amount != "" {
		return amount.ToWei(a.cfg.Amount, amount.NativeDecimals)
	}
	balance, err := a.client.Balance(a.ctx)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	sel := amount.Selector{MinPercent: a.cfg.MinPercent, MaxPercent: a.cfg.MaxPercent}
	value, err := sel.Select(balance)
	if err != nil {
		return nil, err
	}
	a.logger.Info("deposit amount selected",
		zap.String("balance", amount.FromWei(balance, amount.NativeDecimals)),
		zap.String("amount", amount.FromWei(value, amount.NativeDecimals)),
		zap.String("min_percent", a.cfg.MinPercent.String()),
		zap.String("max_percent", a.cfg.MaxPercent.String()),
	)
	return value, nil
}

func (a *app) deposit() (*liquidity.Result, error) {
	startedAt := nowUTC()
	value, err := a.depositAmount()
	if err != nil {
		return nil, err
	}

	res, err := a.engine.Deposit(a.ctx, a.cfg.TokenA, a.cfg.TokenB, value)
	journalResult(a, liquidity.OpDeposit, a.cfg.TokenA, a.cfg.TokenB, res, err, startedAt)
	if err != nil {
		printErr("deposit failed: %v", err)
		return res, err
	}
	printOK("deposit confirmed: %s", res.TxHash.Hex())
	printField("amount", amount.FromWei(res.Amount, amount.NativeDecimals))
	printField("min shares", res.MinOut.String())
	return res, nil
}

func (a *app) withdraw() error {
	startedAt := nowUTC()
	res, err := a.engine.Withdraw(a.ctx, a.cfg.TokenA, a.cfg.TokenB)
	journalResult(a, liquidity.OpWithdraw, a.cfg.TokenA, a.cfg.TokenB, res, err, startedAt)
	if err != nil {
		printErr("withdraw failed: %v", err)
		return err
	}
	printOK("withdraw confirmed: %s", res.TxHash.Hex())
	printField("shares", res.Amount.String())
	printField("min native", amount.FromWei(res.MinOut, amount.NativeDecimals))
	return nil
}
