package registry

import "github.com/ethereum/go-ethereum/common"

// Default returns the built-in registry. The pool pairs native ETH through WETH,
// so "ETH" resolves to the wrapped token address.
func Default() Registry {
	return Registry{
		"zksync": {
			Name:        "zkSync",
			ChainID:     324,
			PoolFactory: common.HexToAddress("0xf2DAd89f2788a8CD54625C60b55cD3d2D0ACa7Cb"),
			Router:      common.HexToAddress("0x9B5def958d0f3b6955cBEa4D5B7809b2fb26b059"),
			Tokens: map[string]common.Address{
				"ETH":    common.HexToAddress("0x5AEa5775959fBC2557Cc8789bC1bf90A239D9a91"),
				"WETH":   common.HexToAddress("0x5AEa5775959fBC2557Cc8789bC1bf90A239D9a91"),
				"USDT":   common.HexToAddress("0x493257fD37EDB34451f62EDf8D2a0C418852bA4C"),
				"USDC":   common.HexToAddress("0x1d17CBcF0D6D143135aE902365D2E5e2A16538D4"),
				"USDC.E": common.HexToAddress("0x3355df6D4c9C3035724Fd0e3914dE96A5a83aaf4"),
			},
		},
	}
}
