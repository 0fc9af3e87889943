// Package localstore is the device-local key/value store behind guest mode
// and the session caches.
//
// # Overview
//
// Values are opaque byte strings (callers store JSON). Keys are namespaced by
// the callers: guest records live under a common prefix so that leaving guest
// mode can drop them with a single DeletePrefix call, while the three cache
// slots use fixed keys outside that prefix.
//
// Two implementations are provided:
//
//   - SQLiteRepository: durable, backed by the local_store table over a
//     dbx.DBTX (either *sql.DB or *sql.Tx).
//   - MemoryRepository: map-backed, for tests and throwaway sessions.
//
// # Contract
//
// Get returns (nil, nil) for a missing key. Delete and DeletePrefix are
// idempotent. Errors are wrapped with the operation and key so they read well
// in logs; the layers above decide whether to surface or absorb them.
package localstore
