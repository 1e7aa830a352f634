/*
Package cash keeps the wallets of the chain and moves funds between them.

A wallet belongs to an address and holds at most one coin per currency. A
holding never drops below zero. Only the native currency, named by the cash
configuration, can be sent with a SendMsg; other extensions move any
currency through the Controller, after authorizing the transfer themselves.
This is how vault funds are released.
*/
package cash
