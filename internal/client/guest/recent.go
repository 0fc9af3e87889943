package guest

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
)

func (f *Facade) storedRecent(ctx context.Context) []models.RecentPage {
	list, ok := read[[]models.RecentPage](ctx, f, session.KeyRecent)
	if !ok || list == nil {
		return []models.RecentPage{}
	}
	return list
}

// RecentPages returns at most five entries, most recently visited first.
func (f *Facade) RecentPages(ctx context.Context) []models.RecentPage {
	if !f.active(ctx) {
		return []models.RecentPage{}
	}
	return models.TopRecent(f.storedRecent(ctx), models.MaxVisibleRecentPages)
}

// VisitPage records a visit. A known path is updated in place (timestamp,
// count+1, latest title/icon); a new one is prepended with count 1. The
// stored history keeps the ten most recent entries.
func (f *Facade) VisitPage(ctx context.Context, path, title, icon string) error {
	if !f.active(ctx) {
		return nil
	}
	now := f.now().UTC()
	list := f.storedRecent(ctx)

	found := false
	for i := range list {
		if list[i].Path == path {
			list[i].VisitedAt = now
			list[i].VisitCount++
			list[i].Title = title
			list[i].Icon = icon
			found = true
			break
		}
	}
	if !found {
		list = append([]models.RecentPage{{
			ID:         f.newID(),
			UserID:     models.GuestUserID,
			Path:       path,
			Title:      title,
			Icon:       icon,
			VisitedAt:  now,
			VisitCount: 1,
		}}, list...)
	}

	models.SortRecentByVisit(list)
	if len(list) > models.MaxStoredRecentPages {
		list = list[:models.MaxStoredRecentPages]
	}
	return f.write(ctx, session.KeyRecent, list)
}

func (f *Facade) ClearRecentPages(ctx context.Context) error {
	if !f.active(ctx) {
		return nil
	}
	return f.write(ctx, session.KeyRecent, []models.RecentPage{})
}
