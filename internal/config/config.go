package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL        string
	Chain         string
	PrivateKey    string
	RegistryFile  string
	TokenA        string
	TokenB        string
	SlippageBps   uint32
	Amount        string
	MinPercent    decimal.Decimal
	MaxPercent    decimal.Decimal
	Journal       string
	PGDSN         string
	RPCMaxRetries int
	RPCRPS        float64
	TxTimeout     time.Duration
	LogLevel      string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain", "zkSync")
	v.SetDefault("token-a", "ETH")
	v.SetDefault("token-b", "USDT")
	v.SetDefault("slippage-bps", 200)
	v.SetDefault("min-percent", "10")
	v.SetDefault("max-percent", "20")
	v.SetDefault("journal", "./data/operations.jsonl")
	v.SetDefault("rpc-max-retries", 3)
	v.SetDefault("rpc-rps", 0)
	v.SetDefault("tx-timeout", time.Duration(0))
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	minPercent, err := decimal.NewFromString(v.GetString("min-percent"))
	if err != nil {
		return Config{}, fmt.Errorf("parse min-percent: %w", err)
	}
	maxPercent, err := decimal.NewFromString(v.GetString("max-percent"))
	if err != nil {
		return Config{}, fmt.Errorf("parse max-percent: %w", err)
	}

	slippage := v.GetInt("slippage-bps")
	if slippage < 0 || slippage >= 10000 {
		return Config{}, fmt.Errorf("slippage-bps must be within 0..9999, got %d", slippage)
	}

	cfg := Config{
		RPCURL:        v.GetString("rpc"),
		Chain:         v.GetString("chain"),
		PrivateKey:    v.GetString("private-key"),
		RegistryFile:  v.GetString("registry"),
		TokenA:        v.GetString("token-a"),
		TokenB:        v.GetString("token-b"),
		SlippageBps:   uint32(slippage),
		Amount:        v.GetString("amount"),
		MinPercent:    minPercent,
		MaxPercent:    maxPercent,
		Journal:       v.GetString("journal"),
		PGDSN:         v.GetString("pg-dsn"),
		RPCMaxRetries: v.GetInt("rpc-max-retries"),
		RPCRPS:        v.GetFloat64("rpc-rps"),
		TxTimeout:     v.GetDuration("tx-timeout"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}
