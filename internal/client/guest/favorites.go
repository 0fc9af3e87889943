package guest

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
)

// Favorites returns the stored favorites, oldest first.
func (f *Facade) Favorites(ctx context.Context) []models.FavoritePage {
	if !f.active(ctx) {
		return []models.FavoritePage{}
	}
	list, ok := read[[]models.FavoritePage](ctx, f, session.KeyFavorites)
	if !ok || list == nil {
		return []models.FavoritePage{}
	}
	return list
}

func (f *Facade) IsFavorite(ctx context.Context, path string) bool {
	return models.FindFavorite(f.Favorites(ctx), path) >= 0
}

// AddFavorite appends path unless it is already present. At capacity the
// entry with the oldest CreatedAt is evicted first. The updated list is
// persisted in one write.
func (f *Facade) AddFavorite(ctx context.Context, path, title, icon string) error {
	if !f.active(ctx) {
		return nil
	}
	list := f.Favorites(ctx)
	if models.FindFavorite(list, path) >= 0 {
		return nil
	}

	for len(list) >= models.MaxFavorites {
		oldest := models.OldestFavorite(list)
		f.log.Debug(ctx, "evicting oldest favorite", "path", list[oldest].Path)
		list = append(list[:oldest:oldest], list[oldest+1:]...)
	}

	list = append(list, models.FavoritePage{
		ID:        f.newID(),
		UserID:    models.GuestUserID,
		Path:      path,
		Title:     title,
		Icon:      icon,
		CreatedAt: f.now().UTC(),
	})
	return f.write(ctx, session.KeyFavorites, list)
}

// RemoveFavorite drops path; removing an absent path is not an error.
func (f *Facade) RemoveFavorite(ctx context.Context, path string) error {
	if !f.active(ctx) {
		return nil
	}
	list := f.Favorites(ctx)
	kept := make([]models.FavoritePage, 0, len(list))
	for _, fav := range list {
		if fav.Path != path {
			kept = append(kept, fav)
		}
	}
	return f.write(ctx, session.KeyFavorites, kept)
}

func (f *Facade) ClearFavorites(ctx context.Context) error {
	if !f.active(ctx) {
		return nil
	}
	return f.write(ctx, session.KeyFavorites, []models.FavoritePage{})
}
