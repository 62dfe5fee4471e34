package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options tunes the RPC transport and transaction handling.
type Options struct {
	MaxRetries        int
	RequestsPerSecond float64
	TxTimeout         time.Duration
	Logger            *zap.Logger
}

// Client wraps go-ethereum RPC with a signing identity.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int

	limiter   *rate.Limiter
	txTimeout time.Duration
	logger    *zap.Logger
}

// NewClient dials rpcURL and binds the signing key. HTTP endpoints go through
// a retrying transport; the chain id is fetched once here.
func NewClient(ctx context.Context, rpcURL string, key *ecdsa.PrivateKey, opts Options) (*Client, error) {
	if key == nil {
		return nil, fmt.Errorf("private key is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rpcClient, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(newHTTPClient(opts.MaxRetries, logger)))
	if err != nil {
		return nil, err
	}

	c := &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		txTimeout: opts.TxTimeout,
		logger:    logger,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	if err := c.wait(ctx); err != nil {
		c.Close()
		return nil, err
	}
	chainID, err := c.ethClient.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	c.chainID = chainID
	return c, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// Address returns the signing address.
func (c *Client) Address() common.Address {
	return c.address
}

// ChainID returns the chain id reported by the node at dial time.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Balance returns the native balance of the signing address.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.ethClient.BalanceAt(ctx, c.address, nil)
}

// CallContract performs an eth_call from the signing address.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if msg.From == (common.Address{}) {
		msg.From = c.address
	}
	return c.ethClient.CallContract(ctx, msg, blockNumber)
}

// TransactionReceipt returns the receipt of a mined transaction.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.ethClient.TransactionReceipt(ctx, txHash)
}

// CodeAt returns the contract code at account. It completes bind.DeployBackend
// so the client can be handed to bind.WaitMined.
func (c *Client) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.ethClient.CodeAt(ctx, account, blockNumber)
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
