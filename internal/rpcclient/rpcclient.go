// Package rpcclient is the default EVM RPC adapter: gas-balance
// queries and signed transaction submission, generalized from the
// teacher's SubsidizerClient (internal/infra/blockchain/subsidizer.go)
// from a single-vault "update merkle root" call to an arbitrary
// per-subscription root submission.
package rpcclient

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-pkgz/lgr"
)

// emptyABI lets RawTransact broadcast pre-packed calldata without
// needing the contract's method descriptors.
var emptyABI = abi.ABI{}

// Config is the signer configuration shared across every chain the
// publisher submits to: one key, one gas policy.
type Config struct {
	PrivateKey string
	GasLimit   uint64
	GasPrice   string
}

// Client is the default RPCClient: it dials whatever rpcURL it is
// asked to use per call rather than pinning to a single chain, since
// the oracle may publish the same root to many chains with one key.
type Client struct {
	logger     lgr.L
	privateKey *ecdsa.PrivateKey
	gasLimit   uint64
	gasPrice   *big.Int

	mu      sync.Mutex
	clients map[string]*ethclient.Client
}

// New parses cfg's private key once and returns a Client that lazily
// dials and caches an ethclient.Client per distinct RPC URL.
func New(logger lgr.L, cfg Config) (*Client, error) {
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("rpcclient: private key is required")
	}

	keyHex := strings.TrimPrefix(cfg.PrivateKey, "0x")
	privateKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: parse private key: %w", err)
	}

	gasPrice, ok := new(big.Int).SetString(cfg.GasPrice, 10)
	if !ok {
		return nil, fmt.Errorf("rpcclient: invalid gas price %q", cfg.GasPrice)
	}

	return &Client{
		logger:     logger,
		privateKey: privateKey,
		gasLimit:   cfg.GasLimit,
		gasPrice:   gasPrice,
		clients:    make(map[string]*ethclient.Client),
	}, nil
}

func (c *Client) dial(rpcURL string) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.clients[rpcURL]; ok {
		return existing, nil
	}

	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: dial %s: %w", rpcURL, err)
	}
	c.clients[rpcURL] = ec
	return ec, nil
}

// Balance returns the native-token balance of address on the chain
// reachable at rpcURL — the gas-balance check the publisher runs
// before every submission.
func (c *Client) Balance(ctx context.Context, address, rpcURL string) (*big.Int, error) {
	ec, err := c.dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBalanceQueryFailed, err)
	}

	balance, err := ec.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBalanceQueryFailed, err)
	}
	return balance, nil
}

// Submit builds a signed transaction carrying calldata against
// contractAddress on the chain reachable at rpcURL and broadcasts it,
// returning the transaction hash. It does not wait for inclusion —
// the scheduler commits once Submit returns, not once the chain
// confirms (see the scheduler's documented race).
func (c *Client) Submit(ctx context.Context, rpcURL string, chainID uint64, contractAddress string, calldata []byte) (string, error) {
	ec, err := c.dial(rpcURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSubmitFailed, err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, new(big.Int).SetUint64(chainID))
	if err != nil {
		return "", fmt.Errorf("%w: transactor: %s", ErrSubmitFailed, err)
	}
	opts.GasLimit = c.gasLimit
	opts.GasPrice = c.gasPrice
	opts.Context = ctx

	bound := bind.NewBoundContract(common.HexToAddress(contractAddress), emptyABI, ec, ec, ec)
	tx, err := bound.RawTransact(opts, calldata)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSubmitFailed, err)
	}

	c.logger.Logf("INFO rpcclient: submitted tx %s to %s (chain %d)", tx.Hash().Hex(), contractAddress, chainID)
	return tx.Hash().Hex(), nil
}
