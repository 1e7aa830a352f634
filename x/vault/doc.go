/*
Package vault implements a custodial multisig vault with unanimous approval.

A vault is created with a fixed board of members. Funds are deposited by
sending native coins to the vault address with a regular cash transfer. Any
board member can propose a transfer out of the vault. The transfer is
released only when every board member approved it: the approval that
completes the board executes the transfer in the same transaction. If the
vault cannot cover the amount at that moment, the proposal remains
unsettled and can be executed explicitly once funds arrive.

Board membership never changes and proposals never expire.
*/
package vault
