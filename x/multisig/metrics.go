package multisig

import (
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the vault state to prometheus. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	authorizations *prometheus.CounterVec
	nonce          prometheus.Gauge
	balance        prometheus.Gauge
}

// NewMetrics creates the vault collectors and registers them.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		authorizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "authorizations_total",
			Help:      "Authorization attempts by result.",
		}, []string{"result"}),
		nonce: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "nonce",
			Help:      "Last consumed nonce.",
		}),
		balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vault",
			Name:      "balance",
			Help:      "Value held by the vault, in wei. Approximated.",
		}),
	}
	for _, c := range []prometheus.Collector{m.authorizations, m.nonce, m.balance} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrDuplicate, "register collector: %s", err)
		}
	}
	return m, nil
}

var resultLabels = []struct {
	err   *errors.Error
	label string
}{
	{ErrMalformedSignature, "malformed_signature"},
	{ErrUnorderedSigner, "unordered_signer"},
	{ErrUnrecognizedSigner, "unrecognized_signer"},
	{ErrInsufficientSigners, "insufficient_signers"},
	{ErrStaleNonce, "stale_nonce"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrReentrancy, "reentrancy"},
	{errors.ErrInput, "invalid_input"},
	{errors.ErrAmount, "invalid_input"},
}

func resultLabel(err error) string {
	if err == nil {
		return "settled"
	}
	for _, r := range resultLabels {
		if r.err.Is(err) {
			return r.label
		}
	}
	return "error"
}

func (m *Metrics) observe(err error) {
	if m == nil {
		return
	}
	m.authorizations.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) setState(nonce uint64, bal coin.Amount) {
	if m == nil {
		return
	}
	m.nonce.Set(float64(nonce))
	m.balance.Set(bal.Float64())
}
