package client

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
)

// OfflineClient stands in for the remote service when no database is
// configured. Every data call fails with ErrUnavailable, so guest mode keeps
// working and authenticated reads degrade the way a network outage would.
type OfflineClient struct{}

var _ Client = OfflineClient{}

func (OfflineClient) Close() error { return nil }

func (OfflineClient) CurrentUser(context.Context) (*models.Identity, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) Profile(context.Context, string) (*models.Profile, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) UpsertProfile(context.Context, *models.Profile) error { return ErrUnavailable }

func (OfflineClient) Subscription(context.Context, string) (*models.Subscription, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) Favorites(context.Context, string) ([]models.FavoritePage, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) InsertFavorite(context.Context, string, string, string, string) error {
	return ErrUnavailable
}

func (OfflineClient) DeleteFavorite(context.Context, string, string) error { return ErrUnavailable }

func (OfflineClient) DeleteAllFavorites(context.Context, string) error { return ErrUnavailable }

func (OfflineClient) RecentPages(context.Context, string, int) ([]models.RecentPage, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) UpsertRecentPage(context.Context, string, string, string, string) error {
	return ErrUnavailable
}

func (OfflineClient) DeleteAllRecent(context.Context, string) error { return ErrUnavailable }

func (OfflineClient) Progress(context.Context, string, string) (models.ToolProgress, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) SetStepCompletion(context.Context, string, string, string, models.StepProgress) error {
	return ErrUnavailable
}

func (OfflineClient) Checklist(context.Context, string) (models.ToolProgress, error) {
	return nil, ErrUnavailable
}

func (OfflineClient) SetChecklistItem(context.Context, string, string, models.StepProgress) error {
	return ErrUnavailable
}
