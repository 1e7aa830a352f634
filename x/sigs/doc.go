/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signature covers the chain ID and the sequence of its signer, which
is stored under the signer address and advanced by each accepted signature.
A signature is thus valid on one chain and only once.
*/
package sigs
