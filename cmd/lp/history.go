package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"liquidityPilot/internal/config"
	"liquidityPilot/internal/model"
	"liquidityPilot/internal/storage"
	"liquidityPilot/internal/storage/postgres"
)

type operationHistory interface {
	RecentOperations(ctx context.Context, account string, limit int) ([]model.OperationRecord, error)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent operations from the Postgres or JSONL journal",
		RunE:  runHistory,
	}
	cmd.Flags().String("pg-dsn", "", "Postgres DSN, read instead of the JSONL journal when set")
	cmd.Flags().String("journal", "./data/operations.jsonl", "operation journal JSONL path")
	cmd.Flags().String("account", "", "account address")
	cmd.Flags().Int("limit", 20, "maximum records")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	account, _ := cmd.Flags().GetString("account")
	limit, _ := cmd.Flags().GetInt("limit")
	if !common.IsHexAddress(account) {
		return fmt.Errorf("--account must be a hex address, got %q", account)
	}

	var source operationHistory
	switch {
	case cfg.PGDSN != "":
		store, err := postgres.NewStore(cmd.Context(), cfg.PGDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		source = store
	case cfg.Journal != "":
		source = storage.NewJsonlStorage(cfg.Journal)
	default:
		return fmt.Errorf("set --pg-dsn or --journal")
	}

	records, err := source.RecentOperations(cmd.Context(), common.HexToAddress(account).Hex(), limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
