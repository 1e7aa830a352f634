/*
Package coffer defines interfaces used throughout the app, such as: storage,
transactions, handlers, results and queries. It also contains helpers to work
with the context, conditions and addresses.

Extensions (see the x/ directory) build on top of these interfaces. The vault
extension, x/vault, holds the custody logic; everything else is the plumbing
that turns a Tendermint ABCI stream into calls of its handlers.
*/
package coffer
