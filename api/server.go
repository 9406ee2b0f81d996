package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/multisig"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// RequestIDHeader carries the request ID. A client provided value is kept,
// otherwise a new one is generated.
const RequestIDHeader = "X-Request-ID"

// maxBodySize limits the size of accepted request bodies.
const maxBodySize = 1e6

// Server serves the vault engine and the accounts it pays to.
type Server struct {
	engine   *multisig.Engine
	db       vault.ReadOnlyKVStore
	bank     cash.Bank
	logger   log.Logger
	gatherer prometheus.Gatherer
	debug    bool
	router   *httprouter.Router
}

var _ http.Handler = (*Server)(nil)

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the logger used for all requests.
func WithLogger(l log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics exposes metrics collected by g under /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithDebug returns full error information to clients, including errors that
// are not registered.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// NewServer returns a handler serving engine. Account balances are read
// from db using bank.
func NewServer(engine *multisig.Engine, db vault.ReadOnlyKVStore, bank cash.Bank, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		db:     db,
		bank:   bank,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	rt := httprouter.New()
	rt.GET("/info", s.info)
	rt.GET("/nonce", s.nonce)
	rt.GET("/balance", s.balance)
	rt.GET("/owners", s.owners)
	rt.GET("/digest", s.digest)
	rt.GET("/accounts/:address", s.account)
	rt.POST("/authorize", s.authorize)
	rt.POST("/deposit", s.deposit)
	if s.gatherer != nil {
		rt.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	rt.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONErr(requestLogger(r), w, errors.Wrap(errors.ErrNotFound, r.URL.Path), s.debug)
	})
	rt.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONResp(requestLogger(r), w, http.StatusMethodNotAllowed, ErrorResponse{
			Code: errors.ErrInput.Code(),
			Log:  fmt.Sprintf("method %s not allowed", r.Method),
		})
	})
	rt.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		err := errors.Wrapf(errors.ErrPanic, "%v", v)
		JSONErr(requestLogger(r), w, err, s.debug)
	}
	s.router = rt
	return s
}

// ServeHTTP binds a request ID and a logger to the request context before
// routing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)

	logger := s.logger.With("request", id)
	logger.Debug("request", "method", r.Method, "path", r.URL.Path)
	ctx := vault.WithLogger(r.Context(), logger)
	s.router.ServeHTTP(w, r.WithContext(ctx))
}
