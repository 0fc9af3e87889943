// Package cli provides the interactive Acadium dashboard client.
//
// It wires configuration, the local store, the session, the cache and the
// dashboard services behind a small REPL. The same commands work in guest
// mode, where everything stays in the local store, and for a signed-in user,
// where reads and writes go to the remote service.
//
// Key features:
//   - Guest mode enter / exit, sign in with a token pair, sign out
//   - Profile, onboarding, focus change and avatar upload
//   - Favorites and recently visited pages
//   - Tool progress and the onboarding checklist
//   - Route: where the dashboard guard would send the user
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
