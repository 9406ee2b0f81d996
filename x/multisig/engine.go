package multisig

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/tendermint/tendermint/libs/log"
)

// configName is the gconf key of the vault configuration.
const configName = "vault"

// Engine authorizes withdrawals from a vault and settles them.
type Engine struct {
	db        vault.CacheableKVStore
	registry  *OwnerRegistry
	verifier  *QuorumVerifier
	digester  Digester
	recoverer crypto.Recoverer
	nonces    NonceLedger
	ledger    Ledger
	payee     Payee
	metrics   *Metrics
	guard     guard
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRecoverer sets the signature recoverer. By default secp256k1 signatures
// are recovered without caching.
func WithRecoverer(r crypto.Recoverer) Option {
	return func(e *Engine) { e.recoverer = r }
}

// WithDigester overrides the digester selected by the configuration scheme.
func WithDigester(d Digester) Option {
	return func(e *Engine) { e.digester = d }
}

// WithMetrics enables reporting to given metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine returns an engine operating on given store. Value released by the
// vault is handed to the payee.
func NewEngine(db vault.CacheableKVStore, conf Configuration, payee Payee, opts ...Option) (*Engine, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if payee == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "payee")
	}
	e := &Engine{
		db:     db,
		nonces: NewNonceLedger(),
		ledger: NewLedger(),
		payee:  payee,
	}
	for _, opt := range opts {
		opt(e)
	}

	reg, err := NewOwnerRegistry(conf.Owners)
	if err != nil {
		return nil, err
	}
	e.registry = reg
	if e.verifier, err = NewQuorumVerifier(reg, int(conf.Threshold), e.recoverer); err != nil {
		return nil, err
	}
	if e.digester == nil {
		if e.digester, err = conf.Digester(); err != nil {
			return nil, err
		}
	}

	nonce, err := e.Nonce()
	if err != nil {
		return nil, err
	}
	bal, err := e.Balance()
	if err != nil {
		return nil, err
	}
	e.metrics.setState(nonce, bal)
	return e, nil
}

// LoadEngine returns an engine using the configuration saved in the store by
// the genesis initializer.
func LoadEngine(db vault.CacheableKVStore, payee Payee, opts ...Option) (*Engine, error) {
	var conf Configuration
	if err := gconf.Load(db, configName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return NewEngine(db, conf, payee, opts...)
}

// Receipt describes a settled withdrawal.
type Receipt struct {
	Nonce   uint64          `json:"nonce"`
	Digest  common.Hash     `json:"digest"`
	Intent  Intent          `json:"intent"`
	Signers []vault.Address `json:"signers"`
	// Balance is the value left in the vault.
	Balance coin.Amount `json:"balance"`
	State   State       `json:"state"`
}

// Authorize releases the intent amount to its recipient if sigs hold a quorum
// of owner signatures over the digest of intent and nonce, and nonce is the
// next expected one.
//
// Either the nonce advance, the vault debit and the recipient credit are all
// written or none of them is.
func (e *Engine) Authorize(ctx context.Context, intent Intent, nonce uint64, sigs [][]byte) (rc *Receipt, err error) {
	a := &attempt{
		log:   vault.GetLogger(ctx).With("module", "multisig", "nonce", nonce),
		state: StateIdle,
	}
	defer func() {
		if err != nil {
			a.reject(err)
		}
		e.metrics.observe(err)
	}()

	if err := e.guard.check(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(intent, sigs); err != nil {
		return nil, err
	}

	digest, err := e.digester.Digest(intent, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "digest")
	}
	a.to(StateDigestBound)

	a.to(StateVerifying)
	signers, err := e.verifier.Verify(digest[:], sigs)
	if err != nil {
		return nil, err
	}
	a.to(StateAuthorized)

	rest, err := e.settle(ctx, intent, nonce)
	if err != nil {
		return nil, err
	}
	a.to(StateSettled)
	a.log.Info("withdrawal settled", "amount", intent.Amount, "recipient", intent.Recipient, "balance", rest)

	return &Receipt{
		Nonce:   nonce,
		Digest:  common.Hash(digest),
		Intent:  intent,
		Signers: signers,
		Balance: rest,
		State:   StateSettled,
	}, nil
}

func validateRequest(intent Intent, sigs [][]byte) error {
	errs := intent.Validate()
	for i, sig := range sigs {
		if sig == nil {
			errs = errors.AppendField(errs, errors.FieldIndex("Signatures", i), errors.Wrap(errors.ErrInput, "nil signature"))
		}
	}
	return errs
}

// settle writes the nonce advance and the value transfer as one unit.
func (e *Engine) settle(ctx context.Context, intent Intent, nonce uint64) (rest coin.Amount, err error) {
	hctx, err := e.guard.enter(ctx)
	if err != nil {
		return rest, err
	}
	defer e.guard.leave()
	defer errors.Recover(&err)

	cache := e.db.CacheWrap()
	if err := e.nonces.Consume(cache, nonce); err != nil {
		cache.Discard()
		return rest, err
	}
	rest, err = e.ledger.Transfer(hctx, cache, e.payee, intent.Recipient, intent.Amount)
	if err != nil {
		cache.Discard()
		return rest, err
	}
	if err := cache.Write(); err != nil {
		return rest, errors.Wrap(err, "commit settlement")
	}
	e.metrics.setState(nonce, rest)
	return rest, nil
}

// Deposit adds value to the vault and returns the new balance.
func (e *Engine) Deposit(ctx context.Context, amount coin.Amount) (total coin.Amount, err error) {
	if amount.IsZero() {
		return total, errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	if _, err := e.guard.enter(ctx); err != nil {
		return total, err
	}
	defer e.guard.leave()

	cache := e.db.CacheWrap()
	if total, err = e.ledger.Deposit(cache, amount); err != nil {
		cache.Discard()
		return total, err
	}
	if err := cache.Write(); err != nil {
		return coin.Amount{}, errors.Wrap(err, "commit deposit")
	}
	vault.GetLogger(ctx).Info("deposit", "module", "multisig", "amount", amount, "balance", total)

	nonce, err := e.Nonce()
	if err != nil {
		return total, err
	}
	e.metrics.setState(nonce, total)
	return total, nil
}

// Nonce returns the last consumed nonce.
func (e *Engine) Nonce() (uint64, error) {
	return e.nonces.Current(e.db)
}

// Balance returns the value held by the vault.
func (e *Engine) Balance() (coin.Amount, error) {
	return e.ledger.Balance(e.db)
}

// Owners returns all owners in ascending order.
func (e *Engine) Owners() []vault.Address {
	return e.registry.Owners()
}

// IsOwner returns true if given address is an owner.
func (e *Engine) IsOwner(addr vault.Address) bool {
	return e.registry.Has(addr)
}

// Threshold returns the number of owner signatures required.
func (e *Engine) Threshold() int {
	return e.verifier.Threshold()
}

// Digest returns the digest owners must sign to authorize intent at nonce.
func (e *Engine) Digest(intent Intent, nonce uint64) (common.Hash, error) {
	d, err := e.digester.Digest(intent, nonce)
	return common.Hash(d), err
}

// attempt tracks the state of a single authorization for logging.
type attempt struct {
	log   log.Logger
	state State
}

func (a *attempt) to(s State) {
	a.log.Debug("authorization", "from", a.state, "to", s)
	a.state = s
}

func (a *attempt) reject(err error) {
	a.log.Info("authorization rejected", "at", a.state, "err", err)
	a.state = StateRejected
}
