package main

import (
	"github.com/spf13/cobra"

	"liquidityPilot/internal/amount"
	"liquidityPilot/internal/contracts"
	"liquidityPilot/internal/pool"
)

func runPool(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tokenA, err := a.chain.Token(a.cfg.TokenA)
	if err != nil {
		return err
	}
	tokenB, err := a.chain.Token(a.cfg.TokenB)
	if err != nil {
		return err
	}

	resolver := pool.NewResolver(contracts.NewFactory(a.client, a.chain.PoolFactory))
	poolAddr, err := resolver.Resolve(a.ctx, tokenA, tokenB)
	if err != nil {
		return err
	}

	reader := pool.NewReader(a.client)
	state, err := reader.ReadState(a.ctx, poolAddr)
	if err != nil {
		return err
	}
	shares, err := reader.ShareBalance(a.ctx, poolAddr, a.client.Address())
	if err != nil {
		return err
	}
	token0, token1, err := contracts.NewPool(a.client, poolAddr).Tokens(a.ctx)
	if err != nil {
		return err
	}
	allowance, err := contracts.Allowance(a.ctx, a.client, poolAddr, a.client.Address(), a.chain.Router)
	if err != nil {
		return err
	}

	printOK("%s/%s pool on %s", a.cfg.TokenA, a.cfg.TokenB, a.chain.Name)
	printField("pool", poolAddr.Hex())
	printField("token0", token0.Hex())
	printField("token1", token1.Hex())
	printField("total supply", state.TotalSupply.String())
	printField("reserve0", state.Reserve0.String())
	printField("reserve1", state.Reserve1.String())
	printField("native reserve", amount.FromWei(state.ReserveNative(), amount.NativeDecimals))
	printField("your shares", shares.String())
	printField("router allowance", allowance.String())
	return nil
}
