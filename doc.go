/*
Package vault defines all common interfaces to weave together the various
subpackages of the quorum-authorized custodial vault, as well as
implementations of some of the simpler components (when interfaces would be
too much overhead).

We pass context through context.Context between the engine, its
collaborators and the API. To do so, vault defines some common keys to store
info, such as the logger. Each extension may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) T
*/
package vault
