package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line arguments to generate the genesis. This
// is application-specific.
type GenOptions func(args []string) (*app.Genesis, error)

// InitCmd creates the home directory with the default configuration and a
// genesis file generated from args. Existing files are kept.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if fileExists(filepath.Join(home, ConfigFile)) {
		logger.Info("Found config file", "path", filepath.Join(home, ConfigFile))
	} else {
		if err := SaveConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Generated config file", "path", filepath.Join(home, ConfigFile))
	}

	genFile := filepath.Join(home, GenesisFile)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}
	genesis, err := gen(args)
	if err != nil {
		return err
	}
	if err := genesis.Save(genFile); err != nil {
		return err
	}
	logger.Info("Generated genesis file", "path", genFile, "chain_id", genesis.ChainID)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
