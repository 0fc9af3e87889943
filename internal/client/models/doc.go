// Package models holds the dashboard's domain types: identities, profiles,
// subscriptions, favorite and recent pages, and tool progress. Guest-mode
// sentinels and the focus landing routes live here too.
package models
