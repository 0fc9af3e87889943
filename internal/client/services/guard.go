package services

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
)

// Decision is where the auth guard sends the user. Err carries the remote
// failure that forced a fallback, if any.
type Decision struct {
	Route string
	Err   error
}

// Guard gates dashboard entry on identity, onboarding and subscription.
type Guard struct {
	*Deps
}

func NewGuard(d *Deps) *Guard {
	return &Guard{Deps: d.init()}
}

// Evaluate never blocks the UI on a failure: remote errors fall back to the
// sign-in route.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	id, err := g.Cache.CurrentUser(ctx)
	if err != nil {
		g.Log.Warn(ctx, "guard: identity check failed", "error", err)
		return Decision{Route: models.RouteSignIn, Err: err}
	}
	if id == nil {
		return Decision{Route: models.RouteSignIn}
	}

	p, err := g.Cache.Profile(ctx, id.ID)
	if err != nil {
		g.Log.Warn(ctx, "guard: profile check failed", "error", err)
		return Decision{Route: models.RouteSignIn, Err: err}
	}
	if p == nil || !p.OnboardingCompleted {
		return Decision{Route: models.RouteOnboarding}
	}

	sub, err := g.Cache.Subscription(ctx, id.ID)
	if err != nil {
		g.Log.Warn(ctx, "guard: subscription check failed", "error", err)
		return Decision{Route: models.RouteSignIn, Err: err}
	}
	if !sub.IsActive() {
		return Decision{Route: models.RoutePayment}
	}

	return Decision{Route: models.FocusRoute(p.Focus)}
}
