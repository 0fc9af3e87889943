package services

import (
	"context"
	"fmt"

	"github.com/acadium/dashboard/internal/client/client"
	"github.com/acadium/dashboard/internal/client/models"
)

// AuthService switches between guest mode and an authenticated session.
type AuthService interface {
	// EnterGuestMode turns guest mode on and seeds the guest identity.
	EnterGuestMode(ctx context.Context) error
	// ExitGuestMode clears the caches and deletes every guest record.
	ExitGuestMode(ctx context.Context) error
	// SignIn leaves guest mode if needed, then starts a session with the
	// given access token.
	SignIn(ctx context.Context, accessToken string) (*models.Identity, error)
	// Refresh swaps in a new access token for the signed-in user.
	Refresh(ctx context.Context, accessToken string) error
	// ReloadUser drops the cached profile of the signed-in user so the next
	// read goes to the remote service.
	ReloadUser(ctx context.Context) error
	// SignOut ends the session, clears the caches and deletes guest data.
	SignOut(ctx context.Context) error
}

type authService struct {
	*Deps
}

func NewAuthService(d *Deps) AuthService {
	return &authService{Deps: d.init()}
}

func (s *authService) EnterGuestMode(ctx context.Context) error {
	if err := s.Session.EnterGuest(ctx); err != nil {
		return fmt.Errorf("enter guest mode: %w", err)
	}
	s.Log.Info(ctx, "guest mode enabled")
	return nil
}

func (s *authService) ExitGuestMode(ctx context.Context) error {
	s.Cache.ClearAll(ctx)
	if err := s.Session.ExitGuest(ctx); err != nil {
		return fmt.Errorf("exit guest mode: %w", err)
	}
	s.Log.Info(ctx, "guest mode disabled")
	return nil
}

func (s *authService) SignIn(ctx context.Context, accessToken string) (*models.Identity, error) {
	if s.guest(ctx) {
		if err := s.ExitGuestMode(ctx); err != nil {
			return nil, err
		}
	}

	id, err := s.Auth.SignIn(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	s.Log.Info(ctx, "signed in", "user_id", id.ID)
	return id, nil
}

func (s *authService) Refresh(ctx context.Context, accessToken string) error {
	if err := s.Auth.Refresh(ctx, accessToken); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	s.Log.Info(ctx, "session refreshed", "user_id", s.Auth.UserID())
	return nil
}

func (s *authService) ReloadUser(ctx context.Context) error {
	if s.Auth.UserID() == "" {
		return fmt.Errorf("reload user: %w", client.ErrUnauthorized)
	}
	s.Auth.NotifyUserUpdated(ctx)
	return nil
}

func (s *authService) SignOut(ctx context.Context) error {
	s.Auth.SignOut(ctx)
	s.Cache.ClearAll(ctx)
	if err := s.Session.ExitGuest(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.Log.Info(ctx, "signed out")
	return nil
}
