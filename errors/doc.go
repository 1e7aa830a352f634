/*
Package errors provides the error kinds of coffer and the helpers to wrap
them.

Every error returned to a client wraps a kind declared with Register. The
kind gives the ABCI code of the response, so clients can act on the code and
show the message. Prefer the kinds of this package. Register a new kind only
when a client must tell it apart, as x/vault does for its proposal errors.

Wrap records a stack trace at the innermost wrap. Print an error with %+v to
see it. Append clubs several errors together and Field labels the error of
a single attribute, which FieldErrors finds again.
*/
package errors
