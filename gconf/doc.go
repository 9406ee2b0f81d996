/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration object in the database, under a
key derived from the extension name. Configuration is loaded from the genesis
file once and read by the extension whenever it is needed.
*/
package gconf
