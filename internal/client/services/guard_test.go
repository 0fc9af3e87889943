package services

import (
	"context"
	"testing"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Evaluate(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	guard := NewGuard(fx.deps)

	d := guard.Evaluate(ctx)
	assert.Equal(t, models.RouteSignIn, d.Route)
	assert.NoError(t, d.Err)

	fx.signIn(t, "u-1")
	assert.Equal(t, models.RouteOnboarding, guard.Evaluate(ctx).Route)

	_, err := NewProfileService(fx.deps).CompleteOnboarding(ctx, onboarding)
	require.NoError(t, err)
	assert.Equal(t, models.RoutePayment, guard.Evaluate(ctx).Route)

	fx.remote.subs["u-1"] = models.Subscription{UserID: "u-1", PlanID: "pro", Status: models.SubscriptionActive}
	assert.Equal(t, "/dashboard/web-dev", guard.Evaluate(ctx).Route)
}

func TestGuard_RemoteFailureFallsBackToSignIn(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	fx.remote.err = assert.AnError

	d := NewGuard(fx.deps).Evaluate(ctx)
	assert.Equal(t, models.RouteSignIn, d.Route)
	assert.ErrorIs(t, d.Err, assert.AnError)
}

func TestGuard_GuestLandsOnFocusRoute(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.enterGuest(t)
	guard := NewGuard(fx.deps)

	assert.Equal(t, models.RouteOnboarding, guard.Evaluate(ctx).Route)

	_, err := NewProfileService(fx.deps).CompleteOnboarding(ctx, models.OnboardingInput{Focus: models.FocusAdvanced, SkillLevel: models.SkillPro})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/advanced", guard.Evaluate(ctx).Route)
	assert.Zero(t, fx.remote.total())
}
