package cache

import (
	"context"

	"github.com/acadium/dashboard/internal/client/client"
	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/guest"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
	"github.com/acadium/dashboard/internal/logging"
)

// Remote is the subset of client.Client the facade reads through.
type Remote interface {
	CurrentUser(ctx context.Context) (*models.Identity, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	Subscription(ctx context.Context, userID string) (*models.Subscription, error)
}

// UserSource names the signed-in user the identity entry is scoped to.
type UserSource interface {
	UserID() string
}

// AuthStream delivers session lifecycle events. client.AuthSession
// implements it.
type AuthStream interface {
	OnAuthStateChange(fn func(client.AuthEvent)) func()
}

// Facade serves the identity, profile and subscription families. In guest
// mode it answers from the guest facade and never calls the remote service.
type Facade struct {
	sess   *session.Session
	guest  *guest.Facade
	remote Remote
	users  UserSource
	log    logging.Logger

	identity     *Slot[models.Identity]
	profile      *Slot[models.Profile]
	subscription *Slot[models.Subscription]
}

func New(sess *session.Session, g *guest.Facade, remote Remote, users UserSource, cfg Config, log logging.Logger) *Facade {
	log = log.With("component", "cache")
	store := sess.Store()
	return &Facade{
		sess:         sess,
		guest:        g,
		remote:       remote,
		users:        users,
		log:          log,
		identity:     NewSlot[models.Identity](store, KeyUser, FamilyIdentity, cfg, log),
		profile:      NewSlot[models.Profile](store, KeyProfile, FamilyProfile, cfg, log),
		subscription: NewSlot[models.Subscription](store, KeySubscription, FamilySubscription, cfg, log),
	}
}

// CurrentUser returns the signed-in identity, or the guest identity in guest
// mode. A nil identity with a nil error means nobody is signed in.
func (f *Facade) CurrentUser(ctx context.Context) (*models.Identity, error) {
	if f.sess.IsGuest(ctx) {
		id, _ := f.guest.User(ctx)
		return &id, nil
	}

	userID := f.users.UserID()
	if userID != "" {
		if id, ok := f.identity.Get(ctx, userID); ok {
			return &id, nil
		}
	}

	id, err := f.remote.CurrentUser(ctx)
	if err != nil {
		f.log.Error(ctx, "fetch current user failed", "error", err)
		return nil, err
	}
	if id != nil && userID != "" {
		f.SetIdentity(ctx, *id, userID)
	}
	return id, nil
}

// Profile returns the profile of userID, or the guest profile in guest mode.
// A missing profile is (nil, nil) and is not cached.
func (f *Facade) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if f.sess.IsGuest(ctx) {
		p, _ := f.guest.Profile(ctx)
		return p, nil
	}

	if p, ok := f.profile.Get(ctx, userID); ok {
		return &p, nil
	}

	p, err := f.remote.Profile(ctx, userID)
	if err != nil {
		f.log.Error(ctx, "fetch profile failed", "user_id", userID, "error", err)
		return nil, err
	}
	if p != nil {
		f.SetProfile(ctx, *p, userID)
	}
	return p, nil
}

// Subscription returns the active subscription of userID. Guests always get
// the guest plan.
func (f *Facade) Subscription(ctx context.Context, userID string) (*models.Subscription, error) {
	if f.sess.IsGuest(ctx) {
		s := models.GuestSubscription()
		return &s, nil
	}

	if s, ok := f.subscription.Get(ctx, userID); ok {
		return &s, nil
	}

	s, err := f.remote.Subscription(ctx, userID)
	if err != nil {
		f.log.Error(ctx, "fetch subscription failed", "user_id", userID, "error", err)
		return nil, err
	}
	if s != nil {
		f.SetSubscription(ctx, *s, userID)
	}
	return s, nil
}

// SetIdentity, SetProfile and SetSubscription prime an entry after a
// successful write. Store failures are logged and absorbed.
func (f *Facade) SetIdentity(ctx context.Context, id models.Identity, userID string) {
	if err := f.identity.Set(ctx, id, userID); err != nil {
		f.log.Warn(ctx, "cache write failed", "family", FamilyIdentity, "error", err)
	}
}

func (f *Facade) SetProfile(ctx context.Context, p models.Profile, userID string) {
	if err := f.profile.Set(ctx, p, userID); err != nil {
		f.log.Warn(ctx, "cache write failed", "family", FamilyProfile, "error", err)
	}
}

func (f *Facade) SetSubscription(ctx context.Context, s models.Subscription, userID string) {
	if err := f.subscription.Set(ctx, s, userID); err != nil {
		f.log.Warn(ctx, "cache write failed", "family", FamilySubscription, "error", err)
	}
}

func (f *Facade) InvalidateProfile(ctx context.Context) {
	if err := f.profile.Clear(ctx); err != nil {
		f.log.Warn(ctx, "cache clear failed", "family", FamilyProfile, "error", err)
	}
}

// ClearAll drops all three entries.
func (f *Facade) ClearAll(ctx context.Context) {
	for family, clear := range map[string]func(context.Context) error{
		FamilyIdentity:     f.identity.Clear,
		FamilyProfile:      f.profile.Clear,
		FamilySubscription: f.subscription.Clear,
	} {
		if err := clear(ctx); err != nil {
			f.log.Warn(ctx, "cache clear failed", "family", family, "error", err)
		}
	}
}

// Attach wires the invalidation triggers: remote profile notifications from
// the bus and session lifecycle events from auth. The returned func detaches
// both.
func (f *Facade) Attach(bus *events.Bus, auth AuthStream) (detach func()) {
	ctx := context.Background()

	unsubBus := bus.Subscribe(events.TopicProfileUpdated, func(e events.Event) {
		if e.Origin == events.OriginRemote {
			f.InvalidateProfile(ctx)
		}
	})

	unsubAuth := auth.OnAuthStateChange(func(ev client.AuthEvent) {
		switch ev.Kind {
		case client.AuthSignedOut:
			f.ClearAll(ctx)
		case client.AuthSignedIn, client.AuthTokenRefreshed:
			if ev.Identity != nil {
				f.SetIdentity(ctx, *ev.Identity, ev.Identity.ID)
			}
		case client.AuthUserUpdated:
			f.InvalidateProfile(ctx)
		}
	})

	return func() {
		unsubBus()
		unsubAuth()
	}
}
