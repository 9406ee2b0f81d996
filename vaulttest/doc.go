/*
Package vaulttest provides helpers for testing code that uses the vault.

Keys created by this package are derived from a seed, so every test run signs
with the same owners.
*/
package vaulttest
