// Package kv implements the shared key/value store the host's preimage
// server writes into and the oracle client reads from (spec.md §5).
package kv

import "errors"

// ErrNotFound is returned by a KV's Get when the key has never been put.
var ErrNotFound = errors.New("kv: key not found")

// KV is the store contract shared by both host tasks: hint handlers write,
// oracle `get` calls read, all under the same read-write lock.
type KV interface {
	Get(key [32]byte) ([]byte, error)
	Put(key [32]byte, value []byte) error
}
