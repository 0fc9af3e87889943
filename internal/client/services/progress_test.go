package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_MarkIncompleteKeepsRecord(t *testing.T) {
	for _, mode := range []string{"guest", "signed-in"} {
		t.Run(mode, func(t *testing.T) {
			ctx := context.Background()
			fx := newFixture(t)
			if mode == "guest" {
				fx.enterGuest(t)
			} else {
				fx.signIn(t, "u-1")
			}
			svc := NewProgressService(fx.deps)

			require.NoError(t, svc.SetStep(ctx, "cursor", "install", true, "went fine"))
			require.NoError(t, svc.SetStep(ctx, "cursor", "configure", true, ""))

			p, err := svc.Get(ctx, "cursor")
			require.NoError(t, err)
			assert.Equal(t, 2, p.CompletedCount())
			assert.Equal(t, "went fine", p["install"].Notes)

			require.NoError(t, svc.SetStep(ctx, "cursor", "install", false, ""))
			p, err = svc.Get(ctx, "cursor")
			require.NoError(t, err)
			require.Contains(t, p, "install")
			assert.False(t, p["install"].Completed)
			assert.Nil(t, p["install"].CompletedAt)
			assert.Equal(t, 1, p.CompletedCount())

			other, err := svc.Get(ctx, "lovable")
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestProgress_Checklist(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.signIn(t, "u-1")
	svc := NewProgressService(fx.deps)

	require.NoError(t, svc.SetChecklistItem(ctx, "intro-video", true))
	require.NoError(t, svc.SetChecklistItem(ctx, "first-prompt", false))

	c, err := svc.Checklist(ctx)
	require.NoError(t, err)
	assert.Len(t, c, 2)
	assert.True(t, c["intro-video"].Completed)
	assert.False(t, c["first-prompt"].Completed)
}
