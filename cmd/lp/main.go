package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "lp",
		Short:        "Single-sided liquidity provider for SyncSwap-style pools",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit native asset into the pool",
		RunE:  runDeposit,
	}
	addCommonFlags(depositCmd)
	addAmountFlags(depositCmd)
	root.AddCommand(depositCmd)

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Burn the full pool-share balance into the native asset",
		RunE:  runWithdraw,
	}
	addCommonFlags(withdrawCmd)
	root.AddCommand(withdrawCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Deposit, then optionally withdraw after confirmation",
		RunE:  runInteractive,
	}
	addCommonFlags(runCmd)
	addAmountFlags(runCmd)
	runCmd.Flags().Bool("yes", false, "withdraw without asking")
	root.AddCommand(runCmd)

	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Show pool address, reserves and share balance",
		RunE:  runPool,
	}
	addCommonFlags(poolCmd)
	root.AddCommand(poolCmd)

	root.AddCommand(newHistoryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "RPC URL")
	cmd.Flags().String("chain", "zkSync", "chain name in the registry")
	cmd.Flags().String("registry", "", "extra chain registry file")
	cmd.Flags().String("token-a", "ETH", "pool token A symbol (withdrawal target)")
	cmd.Flags().String("token-b", "USDT", "pool token B symbol")
	cmd.Flags().Int("slippage-bps", 200, "slippage tolerance in basis points")
	cmd.Flags().String("journal", "./data/operations.jsonl", "operation journal JSONL path")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the operation journal")
	cmd.Flags().Int("rpc-max-retries", 3, "HTTP retries per RPC request")
	cmd.Flags().Float64("rpc-rps", 0, "RPC requests per second, 0 means unlimited")
	cmd.Flags().Duration("tx-timeout", 0, "receipt wait timeout, 0 waits forever")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func addAmountFlags(cmd *cobra.Command) {
	cmd.Flags().String("amount", "", "native amount in whole units (e.g. 0.01), overrides percent selection")
	cmd.Flags().String("min-percent", "10", "minimum share of native balance to deposit")
	cmd.Flags().String("max-percent", "20", "maximum share of native balance to deposit")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
