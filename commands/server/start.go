package server

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// App is a running application served over HTTP.
type App interface {
	Handler() http.Handler
	Close() error
}

// AppGenerator lets us lazily initialize the app, using the home dir and a
// logger initialized with other flags.
type AppGenerator func(home string, conf Config, logger log.Logger) (App, error)

// GenerateApp builds the vault application kept in the home directory.
func GenerateApp(home string, conf Config, logger log.Logger) (App, error) {
	a, err := app.New(app.Config{
		DataDir:        filepath.Join(home, DataDir),
		GenesisFile:    filepath.Join(home, GenesisFile),
		RecovererCache: conf.RecovererCache,
		Metrics:        conf.Metrics,
		Debug:          conf.Debug,
	}, logger)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func parseFlags(conf Config, args []string) (Config, error) {
	fl := flag.NewFlagSet("start", flag.ContinueOnError)
	fl.StringVar(&conf.HTTP, "http", conf.HTTP, "address the HTTP API listens on")
	fl.StringVar(&conf.LogLevel, "log_level", conf.LogLevel, "one of debug, info, error or none")
	fl.BoolVar(&conf.Debug, "debug", conf.Debug, "return full error details to clients")
	fl.BoolVar(&conf.Metrics, "metrics", conf.Metrics, "expose prometheus metrics")
	if err := fl.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, nil
}

// FilterLogger returns a logger that writes only messages of the given level
// and above.
func FilterLogger(logger log.Logger, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// StartCmd loads the configuration, initializes the application and serves it
// until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	if conf, err = parseFlags(conf, args); err != nil {
		return err
	}
	if logger, err = FilterLogger(logger, conf.LogLevel); err != nil {
		return err
	}

	application, err := gen(home, conf, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	ln, err := net.Listen("tcp", conf.HTTP)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "listen: %s", err)
	}
	logger.Info("Starting HTTP server", "bind", ln.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, ln, application.Handler(), logger)
}

// Serve handles requests coming from ln until ctx is cancelled. Requests in
// flight are given a short time to finish.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger log.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return errors.Wrapf(errors.ErrNetwork, "http server: %s", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "shutdown: %s", err)
	}
	return nil
}
