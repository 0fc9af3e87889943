// Package session owns the guest-mode flag: the one predicate every data
// access path consults before choosing between the local guest store and the
// remote service.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/repositories/localstore"
	"github.com/acadium/dashboard/internal/logging"
)

var modeActive = []byte("true")

// Session is the explicit mode context injected into facades and services.
// Separate Session values over separate stores never observe each other.
type Session struct {
	store localstore.Repository
	log   logging.Logger
	now   func() time.Time
}

type Option func(*Session)

// WithClock overrides the wall clock used when seeding the guest identity.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(store localstore.Repository, log logging.Logger, opts ...Option) *Session {
	s := &Session{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying local store to the facades that share it.
func (s *Session) Store() localstore.Repository {
	return s.store
}

// Now returns the session clock reading.
func (s *Session) Now() time.Time {
	return s.now()
}

// IsGuest reads the flag from the store on every call; mode can change
// mid-session (guest → sign-up) so the answer is never memoised. Any read
// problem counts as "not guest".
func (s *Session) IsGuest(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, KeyMode)
	if err != nil {
		s.log.Warn(ctx, "guest mode flag unreadable", "error", err)
		return false
	}
	raw = bytes.TrimSpace(raw)
	return bytes.Equal(raw, modeActive) || bytes.Equal(raw, []byte(`"true"`))
}

// EnterGuest switches guest mode on and seeds the guest identity if none is
// stored yet. Calling it twice keeps the original identity.
func (s *Session) EnterGuest(ctx context.Context) error {
	if err := s.store.Set(ctx, KeyMode, modeActive); err != nil {
		return fmt.Errorf("enter guest mode: %w", err)
	}

	existing, err := s.store.Get(ctx, KeyUser)
	if err == nil && existing != nil {
		var id models.Identity
		if json.Unmarshal(existing, &id) == nil && id.IsGuest() {
			return nil
		}
	}

	b, err := json.Marshal(models.GuestIdentity(s.now()))
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyUser, b); err != nil {
		return fmt.Errorf("seed guest identity: %w", err)
	}
	s.log.Info(ctx, "guest mode enabled")
	return nil
}

// ExitGuest drops every guest key, the flag included.
func (s *Session) ExitGuest(ctx context.Context) error {
	if err := s.store.DeletePrefix(ctx, GuestPrefix); err != nil {
		return fmt.Errorf("exit guest mode: %w", err)
	}
	s.log.Info(ctx, "guest mode disabled")
	return nil
}
