package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityPilot/internal/chain"
	"liquidityPilot/internal/config"
	"liquidityPilot/internal/liquidity"
	"liquidityPilot/internal/registry"
	"liquidityPilot/internal/storage"
	"liquidityPilot/internal/storage/postgres"
)

// app bundles everything a liquidity subcommand needs.
type app struct {
	ctx     context.Context
	cfg     config.Config
	logger  *zap.Logger
	client  *chain.Client
	chain   registry.ChainConfig
	engine  *liquidity.Engine
	journal storage.Journal

	closers []func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a.ctx = ctx
	a.closers = append(a.closers, stop)

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init() error {
	if a.cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	reg := registry.Default()
	if a.cfg.RegistryFile != "" {
		extra, err := registry.LoadFile(a.cfg.RegistryFile)
		if err != nil {
			return err
		}
		reg = reg.Merge(extra)
	}
	chainCfg, err := reg.Lookup(a.cfg.Chain)
	if err != nil {
		return err
	}
	a.chain = chainCfg

	keyHex := a.cfg.PrivateKey
	if keyHex == "" {
		keyHex, err = promptPrivateKey()
		if err != nil {
			return err
		}
	}
	key, err := chain.ParsePrivateKey(keyHex)
	if err != nil {
		return err
	}

	client, err := chain.NewClient(a.ctx, a.cfg.RPCURL, key, chain.Options{
		MaxRetries:        a.cfg.RPCMaxRetries,
		RequestsPerSecond: a.cfg.RPCRPS,
		TxTimeout:         a.cfg.TxTimeout,
		Logger:            a.logger,
	})
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	a.client = client
	a.closers = append(a.closers, client.Close)

	if chainCfg.ChainID != 0 && client.ChainID().Int64() != chainCfg.ChainID {
		return fmt.Errorf("rpc chain id %s does not match %s (%d)", client.ChainID(), chainCfg.Name, chainCfg.ChainID)
	}

	engine, err := liquidity.NewEngine(liquidity.Config{Chain: chainCfg, SlippageBps: a.cfg.SlippageBps}, client, a.logger)
	if err != nil {
		return err
	}
	a.engine = engine

	journals := storage.Multi{}
	if a.cfg.Journal != "" {
		journals = append(journals, storage.NewJsonlStorage(a.cfg.Journal))
	}
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(a.ctx, a.cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(a.ctx); err != nil {
			return err
		}
		journals = append(journals, store)
	}
	a.journal = journals

	a.logger.Info("lp ready",
		zap.String("rpc", a.cfg.RPCURL),
		zap.String("chain", chainCfg.Name),
		zap.String("account", client.Address().Hex()),
		zap.Uint32("slippage_bps", a.cfg.SlippageBps),
		zap.String("journal", a.cfg.Journal),
		zap.String("pg_dsn", redactDSN(a.cfg.PGDSN)),
	)
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
