package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// LoadFile reads extra chain entries from a config file:
//
//	chains:
//	  zksync:
//	    chain-id: 324
//	    pool-factory: "0x..."
//	    router: "0x..."
//	    tokens:
//	      ETH: "0x..."
//
// Any format viper understands (yaml, toml, json) is accepted.
func LoadFile(path string) (Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	out := make(Registry)
	for name := range v.GetStringMap("chains") {
		sub := v.Sub("chains." + name)
		if sub == nil {
			continue
		}
		cfg, err := chainFromViper(name, sub)
		if err != nil {
			return nil, err
		}
		out[normalizeChain(name)] = cfg
	}
	return out, nil
}

func chainFromViper(name string, v *viper.Viper) (ChainConfig, error) {
	cfg := ChainConfig{
		Name:    v.GetString("name"),
		ChainID: v.GetInt64("chain-id"),
		Tokens:  make(map[string]common.Address),
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	if raw := v.GetString("pool-factory"); raw != "" {
		addr, err := parseAddress(raw)
		if err != nil {
			return ChainConfig{}, fmt.Errorf("chain %s pool-factory: %w", name, err)
		}
		cfg.PoolFactory = addr
	}
	if raw := v.GetString("router"); raw != "" {
		addr, err := parseAddress(raw)
		if err != nil {
			return ChainConfig{}, fmt.Errorf("chain %s router: %w", name, err)
		}
		cfg.Router = addr
	}

	for symbol, raw := range v.GetStringMapString("tokens") {
		addr, err := parseAddress(raw)
		if err != nil {
			return ChainConfig{}, fmt.Errorf("chain %s token %s: %w", name, symbol, err)
		}
		cfg.Tokens[normalizeSymbol(symbol)] = addr
	}
	return cfg, nil
}
