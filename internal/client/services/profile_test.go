package services

import (
	"context"
	"testing"

	"github.com/acadium/dashboard/internal/client/cache"
	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var onboarding = models.OnboardingInput{Name: "Ada", Focus: models.FocusWebDev, SkillLevel: models.SkillIntermediate}

func TestProfile_GuestWebDevServedWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.enterGuest(t)
	svc := NewProfileService(fx.deps)

	_, err := svc.CompleteOnboarding(ctx, onboarding)
	require.NoError(t, err)

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.FocusWebDev, p.Focus)
	assert.Equal(t, models.GuestUserID, p.UserID)

	p, err = fx.deps.Cache.Profile(ctx, models.GuestUserID)
	require.NoError(t, err)
	assert.Equal(t, models.FocusWebDev, p.Focus)

	assert.Zero(t, fx.remote.total())
}

func TestProfile_CompleteOnboardingOnce(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	svc := NewProfileService(fx.deps)

	p, err := svc.CompleteOnboarding(ctx, onboarding)
	require.NoError(t, err)
	assert.Equal(t, p.Focus, p.Mission)
	assert.True(t, p.OnboardingCompleted)

	again, err := svc.CompleteOnboarding(ctx, models.OnboardingInput{Focus: models.FocusAdvanced, SkillLevel: models.SkillPro})
	require.NoError(t, err)
	assert.Equal(t, models.FocusWebDev, again.Focus, "second onboarding keeps the first profile")
	assert.Equal(t, 1, fx.remote.count("UpsertProfile"))
	assert.Equal(t, 1, fx.published[events.TopicProfileUpdated])
}

func TestProfile_CompleteOnboardingValidates(t *testing.T) {
	fx := newFixture(t)
	fx.signIn(t, "u-1")

	_, err := NewProfileService(fx.deps).CompleteOnboarding(context.Background(), models.OnboardingInput{Focus: "chess"})
	assert.ErrorIs(t, err, common.ErrInvalidFocus)
	assert.Zero(t, fx.remote.total())
}

func TestProfile_UpdateFocusWritesThroughCache(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	svc := NewProfileService(fx.deps)

	_, err := svc.CompleteOnboarding(ctx, onboarding)
	require.NoError(t, err)

	p, err := svc.UpdateFocus(ctx, models.FocusAIAutomation)
	require.NoError(t, err)
	assert.Equal(t, models.FocusAIAutomation, p.Focus)
	assert.Equal(t, models.FocusAIAutomation, p.Mission)

	reads := fx.remote.count("Profile")
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FocusAIAutomation, got.Focus)
	assert.Equal(t, reads, fx.remote.count("Profile"), "the writer primed the cache")
	assert.Equal(t, 2, fx.published[events.TopicProfileUpdated])

	raw, err := fx.store.Get(ctx, cache.KeyProfile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"focus":"ai-automation"`)
}

func TestProfile_UpdateFocusWithoutProfile(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")

	_, err := NewProfileService(fx.deps).UpdateFocus(ctx, models.FocusExplore)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProfile_GuestUpdateFocusCreatesProfile(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.enterGuest(t)

	p, err := NewProfileService(fx.deps).UpdateFocus(ctx, models.FocusAIVideo)
	require.NoError(t, err)
	assert.Equal(t, models.FocusAIVideo, p.Focus)
	assert.Equal(t, 1, fx.published[events.TopicProfileUpdated])
	assert.Zero(t, fx.remote.total())
}

func TestSubscription_GuestAlwaysActive(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.enterGuest(t)

	active, err := NewSubscriptionService(fx.deps).IsActive(ctx)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Zero(t, fx.remote.total())
}

func TestSubscription_SignedIn(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	svc := NewSubscriptionService(fx.deps)

	active, err := svc.IsActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)

	fx.remote.subs["u-1"] = models.Subscription{UserID: "u-1", PlanID: "pro", Status: models.SubscriptionActive}
	fx.deps.Cache.ClearAll(ctx)

	sub, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pro", sub.PlanID)
}

func TestProfile_SetAvatar(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	svc := NewProfileService(fx.deps)

	_, err := svc.SetAvatar(ctx, "avatars/u-1/a.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.CompleteOnboarding(ctx, onboarding)
	require.NoError(t, err)

	p, err := svc.SetAvatar(ctx, "avatars/u-1/a.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u-1/a.png", p.AvatarURL)
	assert.Equal(t, "avatars/u-1/a.png", fx.remote.profiles["u-1"].AvatarURL)
}
