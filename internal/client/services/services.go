// Package services exposes the operations the dashboard's UI layer calls.
//
// Every operation asks the session once whether guest mode is active and
// then takes exactly one branch: the guest facade or the remote service
// (reads go through the cache facade). Mutations follow the same order in
// both branches: mutate, refetch the authoritative list, then notify the bus.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/acadium/dashboard/internal/client/cache"
	"github.com/acadium/dashboard/internal/client/client"
	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/guest"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
	"github.com/acadium/dashboard/internal/logging"
)

// Authenticator is the part of client.AuthSession the services drive.
type Authenticator interface {
	SignIn(ctx context.Context, access string) (*models.Identity, error)
	Refresh(ctx context.Context, access string) error
	NotifyUserUpdated(ctx context.Context)
	SignOut(ctx context.Context)
	UserID() string
}

// Deps bundles the collaborators shared by every service. The application
// root builds one Deps and passes it to each constructor.
type Deps struct {
	Session *session.Session
	Guest   *guest.Facade
	Cache   *cache.Facade
	Remote  client.Client
	Auth    Authenticator
	Bus     *events.Bus
	Log     logging.Logger
	Now     func() time.Time

	locks *keyedMutex
}

func (d *Deps) init() *Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.locks == nil {
		d.locks = newKeyedMutex()
	}
	return d
}

func (d *Deps) guest(ctx context.Context) bool {
	return d.Session.IsGuest(ctx)
}

// requireUser returns the signed-in user id or client.ErrUnauthorized.
func (d *Deps) requireUser() (string, error) {
	uid := d.Auth.UserID()
	if uid == "" {
		return "", client.ErrUnauthorized
	}
	return uid, nil
}

// keyedMutex serializes read-modify-write sequences per identity.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock acquires the mutex for key and returns its release.
func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
