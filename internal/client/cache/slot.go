// Package cache keeps short-lived copies of the identity, profile and
// subscription records in the local store so repeated reads within a session
// skip the remote service.
//
// Each entry is scoped to the user it was fetched for and expires a fixed
// TTL after it was written. Expiry is checked lazily on read; nothing runs in
// the background. Any entry that fails validation is purged on the spot.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/acadium/dashboard/internal/client/repositories/localstore"
	"github.com/acadium/dashboard/internal/logging"
	"github.com/acadium/dashboard/internal/timex"
)

// DefaultTTL is the validity window of a cache entry.
const DefaultTTL = 30 * time.Minute

type Config struct {
	TTL time.Duration
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// entry is the persisted envelope.
type entry struct {
	Payload         json.RawMessage `json:"payload"`
	OwningUserID    string          `json:"owningUserId"`
	TimestampMillis int64           `json:"timestampMillis"`
}

// Slot is one cached record family stored under a single key. The owning
// user id is part of both Get and Set so an entry can never leak across
// identities.
type Slot[T any] struct {
	store  localstore.Repository
	key    string
	family string
	ttl    time.Duration
	now    func() time.Time
	log    logging.Logger
}

func NewSlot[T any](store localstore.Repository, key, family string, cfg Config, log logging.Logger) *Slot[T] {
	cfg = cfg.withDefaults()
	return &Slot[T]{
		store:  store,
		key:    key,
		family: family,
		ttl:    cfg.TTL,
		now:    cfg.Now,
		log:    log,
	}
}

// Get returns the cached value for userID. Absent, unparseable, expired and
// foreign-owned entries are misses; all but the absent case also purge the
// key.
func (s *Slot[T]) Get(ctx context.Context, userID string) (T, bool) {
	var zero T

	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "key", s.key, "error", err)
		cacheMisses.WithLabelValues(s.family).Inc()
		return zero, false
	}
	if raw == nil {
		cacheMisses.WithLabelValues(s.family).Inc()
		return zero, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return s.purge(ctx, "corrupt", err)
	}

	age := s.now().Sub(timex.FromUnixMillis(e.TimestampMillis))
	if age >= s.ttl {
		return s.purge(ctx, "expired", nil)
	}
	if userID == "" || e.OwningUserID != userID {
		return s.purge(ctx, "owner mismatch", nil)
	}

	var v T
	if err := json.Unmarshal(e.Payload, &v); err != nil {
		return s.purge(ctx, "corrupt payload", err)
	}

	cacheHits.WithLabelValues(s.family).Inc()
	s.log.Debug(ctx, "cache hit", "family", s.family)
	return v, true
}

func (s *Slot[T]) purge(ctx context.Context, reason string, cause error) (T, bool) {
	var zero T
	args := []any{"family", s.family, "reason", reason}
	if cause != nil {
		args = append(args, "error", cause)
	}
	s.log.Debug(ctx, "cache entry purged", args...)

	if err := s.store.Delete(ctx, s.key); err != nil {
		s.log.Warn(ctx, "cache purge failed", "key", s.key, "error", err)
	}
	cachePurges.WithLabelValues(s.family).Inc()
	cacheMisses.WithLabelValues(s.family).Inc()
	return zero, false
}

// Set stores v as owned by userID, stamped with the current time.
func (s *Slot[T]) Set(ctx context.Context, v T, userID string) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s cache payload: %w", s.family, err)
	}
	b, err := json.Marshal(entry{
		Payload:         payload,
		OwningUserID:    userID,
		TimestampMillis: timex.UnixMillis(s.now()),
	})
	if err != nil {
		return fmt.Errorf("encode %s cache entry: %w", s.family, err)
	}
	return s.store.Set(ctx, s.key, b)
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}
