/*
Package app contains the ABCI application glue: a router dispatching
messages by path, decorator chaining and Node, the abci.Application keeping
separate check and deliver cache wraps on top of a commit store.

Query responses carry ResultSet encoded keys and values, so that any number
of models can be returned by a single query.
*/
package app
