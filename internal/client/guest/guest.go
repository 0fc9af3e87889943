// Package guest is the typed facade over the guest records kept in the local
// store. It backs every data operation while guest mode is active.
//
// Every method checks the session first: outside guest mode reads return
// empty values and writes do nothing, so callers never need a mode check of
// their own. Unreadable records are treated as absent and never surface as
// errors; only a failing store write is returned.
package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/acadium/dashboard/internal/client/repositories/localstore"
	"github.com/acadium/dashboard/internal/client/session"
	"github.com/acadium/dashboard/internal/logging"
	"github.com/google/uuid"
)

type Facade struct {
	sess  *session.Session
	store localstore.Repository
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*Facade)

func WithClock(now func() time.Time) Option {
	return func(f *Facade) { f.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(f *Facade) { f.newID = gen }
}

func New(sess *session.Session, log logging.Logger, opts ...Option) *Facade {
	f := &Facade{
		sess:  sess,
		store: sess.Store(),
		log:   log.With("component", "guest"),
		now:   sess.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Facade) active(ctx context.Context) bool {
	return f.sess.IsGuest(ctx)
}

// read decodes key into a T. Missing, unreadable and unparseable values all
// yield ok=false.
func read[T any](ctx context.Context, f *Facade, key string) (v T, ok bool) {
	raw, err := f.store.Get(ctx, key)
	if err != nil {
		f.log.Warn(ctx, "guest record unreadable", "key", key, "error", err)
		return v, false
	}
	if raw == nil {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		f.log.Warn(ctx, "guest record corrupt, treating as empty", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

func (f *Facade) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := f.store.Set(ctx, key, b); err != nil {
		f.log.Error(ctx, "guest record write failed", "key", key, "error", err)
		return err
	}
	return nil
}
