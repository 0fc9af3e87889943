package guest

import (
	"context"
	"fmt"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
)

// User returns the stored guest identity, or the sentinel when none was
// seeded. ok is false outside guest mode.
func (f *Facade) User(ctx context.Context) (models.Identity, bool) {
	if !f.active(ctx) {
		return models.Identity{}, false
	}
	id, ok := read[models.Identity](ctx, f, session.KeyUser)
	if !ok || !id.IsGuest() {
		return models.GuestIdentity(f.now()), true
	}
	return id, true
}

// Profile returns the guest profile if one was saved.
func (f *Facade) Profile(ctx context.Context) (*models.Profile, bool) {
	if !f.active(ctx) {
		return nil, false
	}
	p, ok := read[models.Profile](ctx, f, session.KeyProfile)
	if !ok {
		return nil, false
	}
	return &p, true
}

// SaveProfile writes p as the guest profile. The owner is forced to the
// guest identity; CreatedAt survives overwrites, UpdatedAt is always bumped.
func (f *Facade) SaveProfile(ctx context.Context, p *models.Profile) error {
	if !f.active(ctx) || p == nil {
		return nil
	}
	now := f.now().UTC()
	out := *p
	out.UserID = models.GuestUserID
	if existing, ok := read[models.Profile](ctx, f, session.KeyProfile); ok && !existing.CreatedAt.IsZero() {
		out.CreatedAt = existing.CreatedAt
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if err := f.write(ctx, session.KeyProfile, out); err != nil {
		return fmt.Errorf("save guest profile: %w", err)
	}
	*p = out
	return nil
}

// UpdateFocus moves the guest profile to focus (mission follows). A guest
// without a profile gets a fresh one carrying only the focus.
func (f *Facade) UpdateFocus(ctx context.Context, focus models.Focus) (*models.Profile, error) {
	if !f.active(ctx) {
		return nil, nil
	}
	p, ok := read[models.Profile](ctx, f, session.KeyProfile)
	if !ok {
		p = models.Profile{UserID: models.GuestUserID}
	}
	p.SetFocus(focus, f.now())
	if err := f.SaveProfile(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
