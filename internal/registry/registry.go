package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnknownToken is returned when a symbol is missing from the active chain's token map.
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnknownChain is returned when no registry entry exists for a chain name.
	ErrUnknownChain = errors.New("unknown chain")
)

// ChainConfig holds the static addresses for one chain.
type ChainConfig struct {
	Name        string
	ChainID     int64
	PoolFactory common.Address
	Router      common.Address
	Tokens      map[string]common.Address
}

// Token resolves a token symbol (case-insensitive) to its contract address.
func (c ChainConfig) Token(symbol string) (common.Address, error) {
	addr, ok := c.Tokens[normalizeSymbol(symbol)]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s on %s", ErrUnknownToken, symbol, c.Name)
	}
	return addr, nil
}

// Symbols returns the registered token symbols in sorted order.
func (c ChainConfig) Symbols() []string {
	out := make([]string, 0, len(c.Tokens))
	for symbol := range c.Tokens {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Validate checks that the contract addresses are set.
func (c ChainConfig) Validate() error {
	if c.PoolFactory == (common.Address{}) {
		return fmt.Errorf("chain %s: pool factory address is required", c.Name)
	}
	if c.Router == (common.Address{}) {
		return fmt.Errorf("chain %s: router address is required", c.Name)
	}
	if len(c.Tokens) == 0 {
		return fmt.Errorf("chain %s: token list is empty", c.Name)
	}
	return nil
}

// Registry maps chain names to chain configs.
type Registry map[string]ChainConfig

// Lookup returns the config for a chain name (case-insensitive).
func (r Registry) Lookup(name string) (ChainConfig, error) {
	cfg, ok := r[normalizeChain(name)]
	if !ok {
		return ChainConfig{}, fmt.Errorf("%w: %s", ErrUnknownChain, name)
	}
	return cfg, nil
}

// Merge overlays other onto r. Token maps are merged per symbol and
// non-zero contract addresses in other replace those in r.
func (r Registry) Merge(other Registry) Registry {
	out := make(Registry, len(r)+len(other))
	for key, cfg := range r {
		out[key] = cfg.clone()
	}
	for key, cfg := range other {
		base, ok := out[key]
		if !ok {
			out[key] = cfg.clone()
			continue
		}
		if cfg.ChainID != 0 {
			base.ChainID = cfg.ChainID
		}
		if cfg.PoolFactory != (common.Address{}) {
			base.PoolFactory = cfg.PoolFactory
		}
		if cfg.Router != (common.Address{}) {
			base.Router = cfg.Router
		}
		for symbol, addr := range cfg.Tokens {
			base.Tokens[symbol] = addr
		}
		out[key] = base
	}
	return out
}

func (c ChainConfig) clone() ChainConfig {
	tokens := make(map[string]common.Address, len(c.Tokens))
	for symbol, addr := range c.Tokens {
		tokens[symbol] = addr
	}
	c.Tokens = tokens
	return c
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func normalizeChain(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func parseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}
