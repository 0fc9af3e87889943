package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/common"
	"github.com/acadium/dashboard/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

type AuthEventKind string

const (
	AuthSignedIn       AuthEventKind = "signed_in"
	AuthSignedOut      AuthEventKind = "signed_out"
	AuthTokenRefreshed AuthEventKind = "token_refreshed"
	AuthUserUpdated    AuthEventKind = "user_updated"
)

// AuthEvent is one entry of the session lifecycle stream. Identity is nil
// for AuthSignedOut.
type AuthEvent struct {
	Kind     AuthEventKind
	Identity *models.Identity
}

// Claims carried by access tokens: subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken issues an HS256 access token for id. Used by local setups
// and tests; production tokens come from the identity provider.
func GenerateToken(id models.Identity, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Email: id.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns the identity it names.
func ParseToken(tokenString string, secretKey []byte) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	id := &models.Identity{ID: claims.Subject, Email: claims.Email}
	if claims.IssuedAt != nil {
		id.CreatedAt = claims.IssuedAt.UTC()
	}
	return id, nil
}

type authListener struct {
	id uint64
	fn func(AuthEvent)
}

// AuthSession holds the signed-in identity and fans out lifecycle events to
// listeners registered with OnAuthStateChange.
type AuthSession struct {
	secret []byte
	log    logging.Logger

	mu        sync.RWMutex
	identity  *models.Identity
	listeners []authListener
	nextID    uint64
}

func NewAuthSession(secret []byte, log logging.Logger) *AuthSession {
	return &AuthSession{secret: secret, log: log}
}

// SignIn verifies access and makes its subject the current identity.
func (a *AuthSession) SignIn(ctx context.Context, access string) (*models.Identity, error) {
	id, err := ParseToken(access, a.secret)
	if err != nil {
		a.log.Warn(ctx, "sign in rejected", "error", err)
		return nil, err
	}

	a.mu.Lock()
	a.identity = id
	a.mu.Unlock()

	a.emit(ctx, AuthEvent{Kind: AuthSignedIn, Identity: copyIdentity(id)})
	return id, nil
}

// Refresh swaps in a new access token. The subject must not change.
func (a *AuthSession) Refresh(ctx context.Context, access string) error {
	id, err := ParseToken(access, a.secret)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.identity == nil {
		a.mu.Unlock()
		return ErrUnauthorized
	}
	if a.identity.ID != id.ID {
		a.mu.Unlock()
		return fmt.Errorf("%w: refreshed token names another user", common.ErrInvalidToken)
	}
	a.identity = id
	a.mu.Unlock()

	a.emit(ctx, AuthEvent{Kind: AuthTokenRefreshed, Identity: copyIdentity(id)})
	return nil
}

// NotifyUserUpdated reports that the identity's attributes changed upstream.
func (a *AuthSession) NotifyUserUpdated(ctx context.Context) {
	id := a.Identity()
	if id == nil {
		return
	}
	a.emit(ctx, AuthEvent{Kind: AuthUserUpdated, Identity: id})
}

// SignOut drops the identity. It is safe to call when signed out;
// listeners are notified either way.
func (a *AuthSession) SignOut(ctx context.Context) {
	a.mu.Lock()
	a.identity = nil
	a.mu.Unlock()

	a.emit(ctx, AuthEvent{Kind: AuthSignedOut})
}

// Identity returns a copy of the signed-in identity, or nil.
func (a *AuthSession) Identity() *models.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return copyIdentity(a.identity)
}

// UserID returns the signed-in user id, or "" when signed out.
func (a *AuthSession) UserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return ""
	}
	return a.identity.ID
}

// OnAuthStateChange registers fn for every subsequent lifecycle event and
// returns its deregistration. Calling the returned func more than once is
// harmless.
func (a *AuthSession) OnAuthStateChange(fn func(AuthEvent)) func() {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.listeners = append(a.listeners, authListener{id: id, fn: fn})
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, l := range a.listeners {
				if l.id == id {
					a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (a *AuthSession) emit(ctx context.Context, ev AuthEvent) {
	a.mu.RLock()
	snapshot := append([]authListener(nil), a.listeners...)
	a.mu.RUnlock()

	a.log.Debug(ctx, "auth state changed", "event", string(ev.Kind), "listeners", len(snapshot))
	for _, l := range snapshot {
		l.fn(ev)
	}
}

func copyIdentity(id *models.Identity) *models.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
