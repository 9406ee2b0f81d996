package server

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// ValidateGenesis loads each genesis file into a throwaway store and returns
// the first failure.
func ValidateGenesis(ini vault.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini vault.Initializer, genesisPath string) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if _, err := app.InitStore(db, gen, ini); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
