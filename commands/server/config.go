package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/vault/errors"
	"github.com/pelletier/go-toml"
)

// File names in the home directory.
const (
	ConfigFile  = "config.toml"
	GenesisFile = "genesis.json"
	DataDir     = "data"
)

// Config holds the daemon settings, stored in the config.toml file of the
// home directory. Command line flags take precedence.
type Config struct {
	HTTP           string `toml:"http" comment:"Address the HTTP API listens on."`
	LogLevel       string `toml:"log_level" comment:"One of debug, info, error or none."`
	Metrics        bool   `toml:"metrics" comment:"Expose prometheus metrics under /metrics."`
	Debug          bool   `toml:"debug" comment:"Return full error details to clients."`
	RecovererCache int    `toml:"recoverer_cache" comment:"Number of recovered signers to cache. Zero disables the cache."`
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() Config {
	return Config{
		HTTP:           "localhost:8000",
		LogLevel:       "info",
		Metrics:        true,
		RecovererCache: 1024,
	}
}

// LoadConfig reads the configuration from the home directory. Missing file
// results in the default configuration.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	raw, err := os.ReadFile(filepath.Join(home, ConfigFile))
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := toml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrEncoding, "%s: %s", ConfigFile, err)
	}
	return conf, nil
}

// SaveConfig writes the configuration to the home directory.
func SaveConfig(home string, conf Config) error {
	fd, err := os.OpenFile(filepath.Join(home, ConfigFile), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return fd.Close()
}
