/*
Package app assembles the vault daemon: it opens the store, loads the genesis,
builds the engine and exposes it over HTTP.
*/
package app

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/api"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/badgerdb"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/multisig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tendermint/tendermint/libs/log"
	tmrand "github.com/tendermint/tendermint/libs/rand"
)

// Initializers returns the genesis initializers of all extensions.
func Initializers() vault.Initializer {
	return vault.ChainInitializers(
		multisig.Initializer{},
		cash.Initializer{},
	)
}

// Config holds the settings of an Application.
type Config struct {
	// DataDir is where the store is kept. Empty means in memory.
	DataDir string
	// GenesisFile is loaded into the store the first time it is opened.
	GenesisFile string
	// RecovererCache is the number of recovered signers to remember. Zero
	// disables the cache.
	RecovererCache int
	Metrics        bool
	Debug          bool
}

// Application is a running vault.
type Application struct {
	db      *badgerdb.Store
	engine  *multisig.Engine
	handler http.Handler
}

// New opens the store and builds the vault on top of it. The store must be
// initialized, either earlier or from the genesis file.
func New(conf Config, logger log.Logger) (*Application, error) {
	var (
		db  *badgerdb.Store
		err error
	)
	if conf.DataDir == "" {
		db, err = badgerdb.OpenInMemory()
	} else {
		db, err = badgerdb.Open(conf.DataDir)
	}
	if err != nil {
		return nil, err
	}

	a, err := build(db, conf, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func build(db *badgerdb.Store, conf Config, logger log.Logger) (*Application, error) {
	if conf.GenesisFile != "" {
		gen, err := LoadGenesis(conf.GenesisFile)
		if err != nil {
			return nil, err
		}
		initialized, err := InitStore(db, gen, Initializers())
		if err != nil {
			return nil, err
		}
		if initialized {
			logger.Info("store initialized", "chain_id", gen.ChainID)
		}
	}
	chainID, err := ChainID(db)
	if err != nil {
		return nil, err
	}
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "store is not initialized, provide a genesis file")
	}

	bank := cash.NewBank()
	var (
		opts    []multisig.Option
		apiOpts = []api.Option{
			api.WithLogger(logger.With("module", "api")),
			api.WithDebug(conf.Debug),
		}
	)
	if conf.RecovererCache > 0 {
		rec, err := crypto.NewCachingRecoverer(crypto.Secp256k1Recoverer{}, conf.RecovererCache)
		if err != nil {
			return nil, err
		}
		opts = append(opts, multisig.WithRecoverer(rec))
	}
	if conf.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := multisig.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, multisig.WithMetrics(m))
		apiOpts = append(apiOpts, api.WithMetrics(reg))
	}

	engine, err := multisig.LoadEngine(db, bank, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("vault loaded",
		"chain_id", chainID,
		"owners", len(engine.Owners()),
		"threshold", engine.Threshold())

	return &Application{
		db:      db,
		engine:  engine,
		handler: api.NewServer(engine, db, bank, apiOpts...),
	}, nil
}

// Handler returns the HTTP API of the vault.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Engine returns the vault engine.
func (a *Application) Engine() *multisig.Engine {
	return a.engine
}

// Close releases the store.
func (a *Application) Close() error {
	return a.db.Close()
}

// GenInitOptions returns the genesis of a new vault. Arguments are the owner
// addresses, optionally preceded by flags:
//
//	-threshold 2 -balance "10 ETH" -scheme personal 0x... 0x... 0x...
func GenInitOptions(args []string) (*Genesis, error) {
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	fl.SetOutput(os.Stderr)
	var (
		thresholdFl = fl.Uint("threshold", 0, "Number of owner signatures required. Zero means all owners.")
		schemeFl    = fl.String("scheme", multisig.SchemePersonal, "Digest scheme, personal or eip712.")
		chainIDFl   = fl.String("chain_id", "", "Chain ID. Generated when not given.")
		balanceFl   coin.Amount
	)
	fl.Var(&balanceFl, "balance", "Initial value held by the vault.")
	if err := fl.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if fl.NArg() == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "at least one owner address is required")
	}
	owners := make([]vault.Address, 0, fl.NArg())
	for _, s := range fl.Args() {
		a, err := vault.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		owners = append(owners, a)
	}

	conf := multisig.Configuration{
		Owners:    owners,
		Threshold: uint32(*thresholdFl),
		Scheme:    *schemeFl,
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	chainID := *chainIDFl
	if chainID == "" {
		chainID = fmt.Sprintf("vault-%s", tmrand.Str(6))
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{"vault": conf},
		"vault": map[string]interface{}{
			"balance": balanceFl,
		},
		"cash": []cash.GenesisAccount{},
	}
	opts := make(vault.Options, len(state))
	for name, v := range state {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrEncoding, err.Error())
		}
		opts[name] = raw
	}
	return &Genesis{ChainID: chainID, AppState: opts}, nil
}
