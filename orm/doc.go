/*
Package orm stores protobuf models in a key value store.

A Bucket owns the keys starting with "<name>:" and holds one model type.
Buckets may maintain indexes, which map values computed from a model to the
primary keys of all models producing them, and sequences, which issue
ordered primary keys. ModelBucket wraps a Bucket with a typed API and is
what extensions use.
*/
package orm
