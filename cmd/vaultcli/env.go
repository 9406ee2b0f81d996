package main

import (
	"flag"
	"os"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// flAPI registers the flag of the vault API address.
func flAPI(fl *flag.FlagSet) *string {
	return fl.String("api", env("VAULT_API", "http://localhost:8000"),
		"Vault API address. You can use VAULT_API environment variable to set it.")
}

// flKey registers the flag of the private key file.
func flKey(fl *flag.FlagSet) *string {
	return fl.String("key", env("VAULT_PRIV_KEY", os.Getenv("HOME")+"/.vault.priv.key"),
		"Path to the private key file. You can use VAULT_PRIV_KEY environment variable to set it.")
}
