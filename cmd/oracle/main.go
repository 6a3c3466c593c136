// @title Price Oracle API
// @version 1.0
// @description Authenticated snapshot engine: committed roots, per-symbol Merkle proofs, and chain subscription introspection
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /
// @schemes http https
// @accept json
// @produce json
package main

import (
	"context"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orally-network/price-oracle/internal/api"
	"github.com/orally-network/price-oracle/internal/config"
	"github.com/orally-network/price-oracle/internal/logging"
	"github.com/orally-network/price-oracle/internal/merkletree"
	"github.com/orally-network/price-oracle/internal/pricefetcher"
	"github.com/orally-network/price-oracle/internal/publisher"
	"github.com/orally-network/price-oracle/internal/registry"
	"github.com/orally-network/price-oracle/internal/rpcclient"
	"github.com/orally-network/price-oracle/internal/scheduler"
	"github.com/orally-network/price-oracle/internal/storage"
	"github.com/orally-network/price-oracle/pkg/contracts"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/go-pkgz/lgr"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging.Level)

	store := merkletree.New()

	db, err := storage.Open(logger, cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer db.Close()

	submitRootMethod := contracts.NewIPriceOracle().SubmitRootMethod()

	reg := registry.New()
	seedRegistry(reg, cfg, submitRootMethod, logger)
	restorePersistedState(reg, db, submitRootMethod, logger)

	fetcher := pricefetcher.New(cfg.PriceFetcher.Endpoint)

	rpc, err := rpcclient.New(logger, rpcclient.Config{
		PrivateKey: cfg.Ethereum.PrivateKey,
		GasLimit:   cfg.Ethereum.GasLimit,
		GasPrice:   cfg.Ethereum.GasPrice,
	})
	if err != nil {
		log.Fatalf("failed to initialize rpc client: %v", err)
	}

	minBalance, ok := new(big.Int).SetString(cfg.Ethereum.MinBalance, 10)
	if !ok {
		log.Fatalf("invalid ethereum.min_balance: %q", cfg.Ethereum.MinBalance)
	}
	pub := publisher.New(logger, reg, rpc, minBalance)
	pub.SetOnDeactivate(func() {
		if err := db.SaveChains(chainRecords(reg)); err != nil {
			logger.Logf("WARN failed to persist registry after deactivation: %v", err)
		}
	})

	interval := time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second
	if persisted, found, err := db.LoadInterval(); err == nil && found {
		interval = persisted
	}
	sched := scheduler.New(store, fetcher, pub, cfg.Scheduler.Pairs, interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			logger.Logf("ERROR scheduler stopped: %v", err)
		}
	}()

	server := api.NewServer(store, reg, logger, &cfg.Server)
	go func() {
		if err := server.Start(); err != nil {
			logger.Logf("ERROR server failed to start: %v", err)
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := db.SaveInterval(interval); err != nil {
		logger.Logf("WARN failed to persist scheduler interval: %v", err)
	}
	if err := db.SaveChains(chainRecords(reg)); err != nil {
		logger.Logf("WARN failed to persist chain registry: %v", err)
	}
}

// seedRegistry registers every chain and subscription named in config.
// All of the oracle's subscriptions share one fixed root-sink method,
// submitRoot(bytes32), resolved once in main and passed in here.
func seedRegistry(reg *registry.Registry, cfg *config.Config, submitRootMethod abi.Method, logger lgr.L) {
	for _, chainCfg := range cfg.Chains {
		reg.AddChain(chainCfg.ChainID, chainCfg.RPC, chainCfg.Name)
		for _, sub := range chainCfg.Subscriptions {
			if _, err := reg.Subscribe(chainCfg.ChainID, sub.Address, sub.RPC, sub.ContractAddress, submitRootMethod); err != nil {
				logger.Logf("ERROR failed to subscribe %s on chain %d: %v", sub.Address, chainCfg.ChainID, err)
			}
		}
	}
}

// chainRecords snapshots the registry into its persisted shape.
func chainRecords(reg *registry.Registry) []storage.ChainRecord {
	chains := reg.Chains()
	out := make([]storage.ChainRecord, 0, len(chains))
	for _, c := range chains {
		subs := c.Subscriptions()
		subRecords := make([]storage.SubscriptionRecord, len(subs))
		for i, s := range subs {
			subRecords[i] = storage.SubscriptionRecord{
				ID:              s.ID,
				ChainID:         s.ChainID,
				Address:         s.Address,
				RPC:             s.RPC,
				Active:          s.Active,
				ContractAddress: s.ContractAddress,
			}
		}
		out = append(out, storage.ChainRecord{
			ChainID:       c.ChainID,
			RPC:           c.RPC,
			Name:          c.Name,
			Subscriptions: subRecords,
		})
	}
	return out
}

// restorePersistedState re-applies persisted registry state on top of
// what seedRegistry just built from config. Subscribe mints a fresh id
// every run, so a persisted subscription can't be found by id; it is
// matched against the freshly seeded one by (address, contract) and
// its active flag is carried over. A chain no longer present in
// config is rebuilt from the persisted record directly, subscriptions
// included, since nothing else would ever recreate it.
func restorePersistedState(reg *registry.Registry, db *storage.Store, submitRootMethod abi.Method, logger lgr.L) {
	records, found, err := db.LoadChains()
	if err != nil {
		logger.Logf("WARN failed to load persisted chains: %v", err)
		return
	}
	if !found {
		return
	}

	for _, rec := range records {
		chain, ok := reg.Chain(rec.ChainID)
		if !ok {
			chain = reg.AddChain(rec.ChainID, rec.RPC, rec.Name)
			for _, sub := range rec.Subscriptions {
				restored, err := reg.Subscribe(chain.ChainID, sub.Address, sub.RPC, sub.ContractAddress, submitRootMethod)
				if err != nil {
					logger.Logf("WARN failed to restore subscription %s on chain %d: %v", sub.Address, chain.ChainID, err)
					continue
				}
				if !sub.Active {
					_ = reg.Deactivate(chain.ChainID, restored.ID)
				}
			}
			continue
		}

		for _, persisted := range rec.Subscriptions {
			if persisted.Active {
				continue
			}
			for _, live := range chain.Subscriptions() {
				if live.Address == persisted.Address && live.ContractAddress == persisted.ContractAddress {
					if err := reg.Deactivate(chain.ChainID, live.ID); err != nil {
						logger.Logf("WARN failed to restore deactivation for %s on chain %d: %v", live.Address, chain.ChainID, err)
					}
					break
				}
			}
		}
	}
}

func waitForShutdown(logger lgr.L) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Logf("INFO shutdown signal received")
}
