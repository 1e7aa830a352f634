/*
Package x contains the authentication helpers shared by all extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
Sub-packages provide signature verification (sigs), token wallets (cash),
common decorators (utils) and the multisig vault (vault).

Handlers never depend on a concrete authentication scheme. They receive an
Authenticator and ask it which conditions the current transaction
fulfills.
*/
package x
