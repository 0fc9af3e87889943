package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/acadium/dashboard/internal/client/cache"
	"github.com/acadium/dashboard/internal/client/client"
	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/guest"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/repositories/localstore"
	"github.com/acadium/dashboard/internal/client/session"
	"github.com/acadium/dashboard/internal/common"
	"github.com/acadium/dashboard/internal/logging"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// stepClock returns epoch, epoch+1s, epoch+2s, ... on successive calls.
type stepClock struct {
	mu    sync.Mutex
	ticks int
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := epoch.Add(time.Duration(c.ticks) * time.Second)
	c.ticks++
	return t
}

// fakeClient implements client.Client over in-memory tables and counts every
// call so tests can assert that guest mode never reaches it.
type fakeClient struct {
	mu    sync.Mutex
	clock func() time.Time
	calls map[string]int
	err   error

	users     map[string]*models.Identity
	signedIn  string
	profiles  map[string]models.Profile
	subs      map[string]models.Subscription
	favorites map[string][]models.FavoritePage
	recent    map[string][]models.RecentPage
	progress  map[string]models.ToolProgress
	checklist map[string]models.ToolProgress
	nextID    int
}

func newFakeClient(clock func() time.Time) *fakeClient {
	return &fakeClient{
		clock:     clock,
		calls:     map[string]int{},
		users:     map[string]*models.Identity{},
		profiles:  map[string]models.Profile{},
		subs:      map[string]models.Subscription{},
		favorites: map[string][]models.FavoritePage{},
		recent:    map[string][]models.RecentPage{},
		progress:  map[string]models.ToolProgress{},
		checklist: map[string]models.ToolProgress{},
	}
}

func (f *fakeClient) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeClient) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) id() string {
	f.nextID++
	return fmt.Sprintf("row-%d", f.nextID)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) CurrentUser(context.Context) (*models.Identity, error) {
	if err := f.hit("CurrentUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[f.signedIn], nil
}

func (f *fakeClient) Profile(_ context.Context, userID string) (*models.Profile, error) {
	if err := f.hit("Profile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeClient) UpsertProfile(_ context.Context, p *models.Profile) error {
	if err := f.hit("UpsertProfile"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeClient) Subscription(_ context.Context, userID string) (*models.Subscription, error) {
	if err := f.hit("Subscription"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[userID]
	if !ok || !s.IsActive() {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeClient) Favorites(_ context.Context, userID string) ([]models.FavoritePage, error) {
	if err := f.hit("Favorites"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]models.FavoritePage(nil), f.favorites[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeClient) InsertFavorite(_ context.Context, userID, path, title, icon string) error {
	if err := f.hit("InsertFavorite"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if models.FindFavorite(f.favorites[userID], path) >= 0 {
		return nil
	}
	f.favorites[userID] = append(f.favorites[userID], models.FavoritePage{
		ID: f.id(), UserID: userID, Path: path, Title: title, Icon: icon, CreatedAt: f.clock(),
	})
	return nil
}

func (f *fakeClient) DeleteFavorite(_ context.Context, userID, path string) error {
	if err := f.hit("DeleteFavorite"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.favorites[userID]
	if i := models.FindFavorite(list, path); i >= 0 {
		f.favorites[userID] = append(list[:i:i], list[i+1:]...)
	}
	return nil
}

func (f *fakeClient) DeleteAllFavorites(_ context.Context, userID string) error {
	if err := f.hit("DeleteAllFavorites"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites, userID)
	return nil
}

func (f *fakeClient) RecentPages(_ context.Context, userID string, limit int) ([]models.RecentPage, error) {
	if err := f.hit("RecentPages"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.TopRecent(f.recent[userID], limit), nil
}

func (f *fakeClient) UpsertRecentPage(_ context.Context, userID, path, title, icon string) error {
	if err := f.hit("UpsertRecentPage"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.clock()
	list := f.recent[userID]
	for i := range list {
		if list[i].Path == path {
			list[i].VisitCount++
			list[i].VisitedAt = now
			list[i].Title = title
			return nil
		}
	}
	list = append(list, models.RecentPage{
		ID: f.id(), UserID: userID, Path: path, Title: title, Icon: icon, VisitedAt: now, VisitCount: 1,
	})
	f.recent[userID] = models.TopRecent(list, models.MaxStoredRecentPages)
	return nil
}

func (f *fakeClient) DeleteAllRecent(_ context.Context, userID string) error {
	if err := f.hit("DeleteAllRecent"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recent, userID)
	return nil
}

func (f *fakeClient) Progress(_ context.Context, userID, toolID string) (models.ToolProgress, error) {
	if err := f.hit("Progress"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress[userID+"/"+toolID], nil
}

func (f *fakeClient) SetStepCompletion(_ context.Context, userID, toolID, stepID string, p models.StepProgress) error {
	if err := f.hit("SetStepCompletion"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := userID + "/" + toolID
	if f.progress[key] == nil {
		f.progress[key] = models.ToolProgress{}
	}
	f.progress[key][stepID] = p
	return nil
}

func (f *fakeClient) Checklist(_ context.Context, userID string) (models.ToolProgress, error) {
	if err := f.hit("Checklist"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checklist[userID], nil
}

func (f *fakeClient) SetChecklistItem(_ context.Context, userID, itemID string, p models.StepProgress) error {
	if err := f.hit("SetChecklistItem"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checklist[userID] == nil {
		f.checklist[userID] = models.ToolProgress{}
	}
	f.checklist[userID][itemID] = p
	return nil
}

var _ client.Client = (*fakeClient)(nil)

// fakeAuth is a token-less Authenticator: the access token is the user id.
type fakeAuth struct {
	remote      *fakeClient
	userID      string
	signOut     int
	refreshed   int
	userUpdated int
}

func (a *fakeAuth) SignIn(_ context.Context, access string) (*models.Identity, error) {
	if access == "" {
		return nil, client.ErrUnauthorized
	}
	a.userID = access
	a.remote.mu.Lock()
	a.remote.signedIn = access
	if a.remote.users[access] == nil {
		a.remote.users[access] = &models.Identity{ID: access, Email: access + "@example.com"}
	}
	id := *a.remote.users[access]
	a.remote.mu.Unlock()
	return &id, nil
}

func (a *fakeAuth) Refresh(_ context.Context, access string) error {
	if a.userID == "" {
		return client.ErrUnauthorized
	}
	if access != a.userID {
		return common.ErrInvalidToken
	}
	a.refreshed++
	return nil
}

func (a *fakeAuth) NotifyUserUpdated(context.Context) { a.userUpdated++ }

func (a *fakeAuth) SignOut(context.Context) {
	a.signOut++
	a.userID = ""
	a.remote.mu.Lock()
	a.remote.signedIn = ""
	a.remote.mu.Unlock()
}

func (a *fakeAuth) UserID() string { return a.userID }

type fixture struct {
	store  localstore.Repository
	remote *fakeClient
	auth   *fakeAuth
	bus    *events.Bus
	deps   *Deps
	clock  *stepClock

	published map[events.Topic]int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOver(t, localstore.NewMemoryRepository())
}

// newFixtureOver builds the fixture on top of a caller-supplied store.
func newFixtureOver(t *testing.T, store localstore.Repository) *fixture {
	t.Helper()
	clock := &stepClock{}
	sess := session.New(store, logging.Nop(), session.WithClock(clock.Now))
	g := guest.New(sess, logging.Nop(), guest.WithClock(clock.Now))
	remote := newFakeClient(clock.Now)
	auth := &fakeAuth{remote: remote}
	bus := events.NewBus(logging.Nop())
	c := cache.New(sess, g, remote, auth, cache.Config{Now: clock.Now}, logging.Nop())

	fx := &fixture{
		store:     store,
		remote:    remote,
		auth:      auth,
		bus:       bus,
		clock:     clock,
		published: map[events.Topic]int{},
		deps: &Deps{
			Session: sess,
			Guest:   g,
			Cache:   c,
			Remote:  remote,
			Auth:    auth,
			Bus:     bus,
			Log:     logging.Nop(),
			Now:     clock.Now,
		},
	}
	for _, topic := range []events.Topic{events.TopicFavoritesChanged, events.TopicRecentPagesChanged, events.TopicProfileUpdated} {
		topic := topic
		unsubscribe := bus.Subscribe(topic, func(events.Event) { fx.published[topic]++ })
		t.Cleanup(unsubscribe)
	}
	return fx
}

func (fx *fixture) enterGuest(t *testing.T) {
	t.Helper()
	require.NoError(t, NewAuthService(fx.deps).EnterGuestMode(context.Background()))
}

func (fx *fixture) signIn(t *testing.T, userID string) {
	t.Helper()
	_, err := NewAuthService(fx.deps).SignIn(context.Background(), userID)
	require.NoError(t, err)
}

// slowStore delays reads of one key so that read-modify-write sequences
// overlap when they are not serialized.
type slowStore struct {
	localstore.Repository
	key   string
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.key {
		time.Sleep(s.delay)
	}
	return s.Repository.Get(ctx, key)
}

func favPaths(list []models.FavoritePage) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.Path)
	}
	return out
}

func recentPaths(list []models.RecentPage) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Path)
	}
	return out
}
