package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// EnterGuest starts a guest session. Nothing is sent to the remote service.
func (a *App) EnterGuest(ctx context.Context) error {
	if err := a.authService.EnterGuestMode(ctx); err != nil {
		return err
	}
	printlnFn("Guest mode on. Data stays on this device until you exit guest mode.")
	return nil
}

// ExitGuest ends the guest session and removes all guest data.
func (a *App) ExitGuest(ctx context.Context) error {
	if err := a.authService.ExitGuestMode(ctx); err != nil {
		return err
	}
	printlnFn("Guest mode off.")
	return nil
}

// SignIn prompts for an access token without echo and starts an
// authenticated session. A guest session in progress is ended first.
func (a *App) SignIn(ctx context.Context) error {
	access, err := getSecret("Access token", a.out)
	if err != nil {
		return err
	}

	id, err := a.authService.SignIn(ctx, access)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Signed in as %s", id.Email))
	return nil
}

// Refresh prompts for a renewed access token of the signed-in user.
func (a *App) Refresh(ctx context.Context) error {
	access, err := getSecret("New access token", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.Refresh(ctx, access); err != nil {
		return err
	}
	printlnFn("Session refreshed.")
	return nil
}

// Reload drops the cached profile so the next read fetches it again.
func (a *App) Reload(ctx context.Context) error {
	if err := a.authService.ReloadUser(ctx); err != nil {
		return err
	}
	printlnFn("Profile will be reloaded.")
	return nil
}

// SignOut ends the session and clears every cached entry.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.authService.SignOut(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// Whoami prints the current identity.
func (a *App) Whoami(ctx context.Context) error {
	id, err := a.identityService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> since %s", id.ID, id.Email, id.CreatedAt.Format("2006-01-02")))
	return nil
}
