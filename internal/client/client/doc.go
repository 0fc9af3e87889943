// Package client contains the dashboard's view of the remote
// backend-as-a-service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     records the dashboard core reads and writes: identity, profile,
//     subscription, favorites, recent pages, progress and checklist.
//  2. A Postgres implementation (see PostgresClient) over database/sql with
//     the pgx stdlib driver.
//  3. The auth session (see AuthSession) that verifies access tokens and
//     emits the session lifecycle stream: signed_in, signed_out,
//     token_refreshed, user_updated.
//  4. ProfileNotifier, which turns Postgres NOTIFY messages into
//     remote-origin profile_updated events on the in-process bus.
//  5. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite store behind guest mode and the session caches.
//
// # Error Handling
//
// Sentinel errors can be matched with errors.Is: ErrUnavailable,
// ErrUnauthorized, and common.ErrInvalidToken for rejected tokens.
//
// # Concurrency
//
// PostgresClient and AuthSession are safe for concurrent use. All blocking
// operations accept a context.Context and honor cancellation.
package client
