package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	switch {
	case a.session != nil && a.session.IsGuest(ctx):
		return "(guest)"
	case a.users != nil && a.users.UserID() != "":
		return fmt.Sprintf("(%s)", a.users.UserID())
	default:
		return ""
	}
}

func (a *App) isSignedIn(ctx context.Context) bool {
	return a.getStatus(ctx) != ""
}

// Root runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	a.log.Info(ctx, "Welcome to Acadium CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
