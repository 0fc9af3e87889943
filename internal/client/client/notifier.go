package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProfileChannel is the Postgres NOTIFY channel the profiles trigger writes
// the changed user id and updated_at stamp to.
const ProfileChannel = "profile_updates"

// OwnWrites recognises notifications caused by writes of this process.
// PostgresClient implements it.
type OwnWrites interface {
	OwnProfileWrite(userID string, updatedAt int64) bool
}

// profileNotice is the trigger payload. Older schemas send the bare user id.
type profileNotice struct {
	UserID    string `json:"user_id"`
	UpdatedAt int64  `json:"updated_at"`
}

func parseProfileNotice(payload string) profileNotice {
	var n profileNotice
	if err := json.Unmarshal([]byte(payload), &n); err != nil || n.UserID == "" {
		return profileNotice{UserID: payload}
	}
	return n
}

// Listener is the part of a pgx connection ProfileNotifier drives.
type Listener interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type Publisher interface {
	PublishEvent(evt events.Event)
}

// ProfileNotifier republishes remote profile changes of the signed-in user
// as profile_updated events with remote origin.
type ProfileNotifier struct {
	listener Listener
	bus      Publisher
	auth     interface{ UserID() string }
	own      OwnWrites
	log      logging.Logger
}

type NotifierOption func(*ProfileNotifier)

// WithOwnWrites drops notifications that echo profile writes made through own.
func WithOwnWrites(own OwnWrites) NotifierOption {
	return func(n *ProfileNotifier) { n.own = own }
}

func NewProfileNotifier(l Listener, bus Publisher, auth interface{ UserID() string }, log logging.Logger, opts ...NotifierOption) *ProfileNotifier {
	n := &ProfileNotifier{listener: l, bus: bus, auth: auth, log: log}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ListenProfiles opens a dedicated pgx connection subscribed to ProfileChannel.
func ListenProfiles(ctx context.Context, dsn string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ProfileChannel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listen %s: %w", ProfileChannel, err)
	}
	return conn, nil
}

// Run blocks delivering notifications until ctx is done or the connection
// fails. It returns nil on cancellation and closes the listener either way.
func (n *ProfileNotifier) Run(ctx context.Context) error {
	defer func() {
		_ = n.listener.Close(context.Background())
	}()

	for {
		msg, err := n.listener.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			n.log.Error(ctx, "profile notifications stopped", "error", err)
			return fmt.Errorf("wait for notification: %w", err)
		}

		if msg.Channel != ProfileChannel {
			continue
		}
		notice := parseProfileNotice(msg.Payload)
		if uid := n.auth.UserID(); uid == "" || uid != notice.UserID {
			continue
		}
		if n.own != nil && notice.UpdatedAt != 0 && n.own.OwnProfileWrite(notice.UserID, notice.UpdatedAt) {
			n.log.Debug(ctx, "own profile write echoed", "user_id", notice.UserID)
			continue
		}

		n.log.Debug(ctx, "remote profile change", "user_id", notice.UserID)
		n.bus.PublishEvent(events.Event{Topic: events.TopicProfileUpdated, Origin: events.OriginRemote})
	}
}
