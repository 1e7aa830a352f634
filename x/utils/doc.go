/*
Package utils contains the decorators every coffer application chain is
built from: panic recovery, logging, savepoints and action tagging.
*/
package utils
