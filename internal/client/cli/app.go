package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/acadium/dashboard/internal/client/avatar"
	"github.com/acadium/dashboard/internal/client/cache"
	"github.com/acadium/dashboard/internal/client/client"
	"github.com/acadium/dashboard/internal/client/config"
	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/guest"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/services"
	"github.com/acadium/dashboard/internal/client/session"
	"github.com/acadium/dashboard/internal/filex"
	"github.com/acadium/dashboard/internal/logging"
)

// routeEvaluator is the part of services.Guard the app needs.
type routeEvaluator interface {
	Evaluate(ctx context.Context) services.Decision
}

// avatarStore uploads avatar images and resolves stored references.
type avatarStore interface {
	Enabled() bool
	Upload(ctx context.Context, userID, contentType string, data []byte) (string, error)
	URL(ctx context.Context, p *models.Profile) (string, error)
}

type guestChecker interface {
	IsGuest(ctx context.Context) bool
}

type userSource interface {
	UserID() string
}

type App struct {
	config *config.Config
	log    logging.Logger

	authService         services.AuthService
	identityService     services.IdentityService
	profileService      services.ProfileService
	subscriptionService services.SubscriptionService
	favoritesService    services.FavoritesService
	recentService       services.RecentPagesService
	progressService     services.ProgressService
	guard               routeEvaluator
	avatars             avatarStore

	session guestChecker
	users   userSource

	reader *bufio.Reader
	out    io.Writer

	closers  []func() error
	notifier func(ctx context.Context) error
}

// NewApp builds the whole client: local store, session, bus, guest facade,
// auth session, remote client, cache and services. Without a Postgres DSN,
// or when the database is unreachable, the app runs against
// client.OfflineClient and only guest mode is fully functional.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, os.Stderr)

	if err := filex.EnsureParentDir(c.StorePath); err != nil {
		return nil, err
	}
	store, db, err := client.InitDatabase(ctx, c.StorePath)
	if err != nil {
		logger.Error(ctx, "error initializing local store", "error", err)
		return nil, err
	}

	app := &App{
		config: c,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	app.closers = append(app.closers, db.Close)

	sess := session.New(store, logger)
	bus := events.NewBus(logger)
	gf := guest.New(sess, logger)
	auth := client.NewAuthSession([]byte(c.JWTSecret), logger)

	var remote client.Client = client.OfflineClient{}
	if c.PostgresDSN != "" {
		pg, err := client.OpenPostgres(ctx, c.PostgresDSN)
		if err != nil {
			logger.Warn(ctx, "remote service unavailable, running offline", "error", err)
		} else {
			if c.RemoteMigrate {
				if err := client.RunRemoteMigrations(ctx, pg); err != nil {
					_ = pg.Close()
					_ = db.Close()
					return nil, fmt.Errorf("migrate remote schema: %w", err)
				}
			}
			pc := client.NewPostgresClient(pg, auth)
			remote = pc
			app.notifier = func(ctx context.Context) error {
				return runProfileNotifier(ctx, c.PostgresDSN, bus, auth, pc, logger)
			}
		}
	}
	app.closers = append(app.closers, remote.Close)

	cf := cache.New(sess, gf, remote, auth, cache.Config{TTL: c.CacheTTL}, logger)
	detach := cf.Attach(bus, auth)
	app.closers = append(app.closers, func() error { detach(); return nil })

	deps := &services.Deps{
		Session: sess,
		Guest:   gf,
		Cache:   cf,
		Remote:  remote,
		Auth:    auth,
		Bus:     bus,
		Log:     logger,
	}

	app.authService = services.NewAuthService(deps)
	app.identityService = services.NewIdentityService(deps)
	app.profileService = services.NewProfileService(deps)
	app.subscriptionService = services.NewSubscriptionService(deps)
	app.favoritesService = services.NewFavoritesService(deps)
	app.recentService = services.NewRecentPagesService(deps)
	app.progressService = services.NewProgressService(deps)
	app.guard = services.NewGuard(deps)
	app.avatars = avatar.NewResolver(c.Avatar())
	app.session = sess
	app.users = auth

	return app, nil
}

func runProfileNotifier(ctx context.Context, dsn string, bus *events.Bus, auth *client.AuthSession, own client.OwnWrites, log logging.Logger) error {
	conn, err := client.ListenProfiles(ctx, dsn)
	if err != nil {
		return err
	}
	return client.NewProfileNotifier(conn, bus, auth, log, client.WithOwnWrites(own)).Run(ctx)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
		// Unblocks the REPL scanner.
		_ = os.Stdin.Close()
	}()
}

// Run starts the profile notifier (when connected) and blocks in the REPL
// until the user exits, stdin closes or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.notifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.notifier(ctx); err != nil {
				app.log.Warn(ctx, "profile notifications stopped", "error", err)
			}
		}()
	}

	app.Root(ctx)

	cancelFunc()
	wg.Wait()

	if err := app.Close(); err != nil {
		app.log.Error(ctx, "close", "error", err)
	}
}

// Close releases everything NewApp opened, in reverse order.
func (app *App) Close() error {
	var first error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil && first == nil {
			first = fmt.Errorf("close: %w", err)
		}
	}
	app.closers = nil
	return first
}
