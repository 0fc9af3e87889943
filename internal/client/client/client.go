package client

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
)

// Client is the remote data service as the dashboard core sees it. Every
// call is scoped by the opaque user id of the signed-in identity.
//
// Lookups return (nil, nil) when the record does not exist; errors are
// reserved for transport and service failures.
type Client interface {
	Close() error

	CurrentUser(ctx context.Context) (*models.Identity, error)

	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error

	// Subscription returns the user's active subscription only.
	Subscription(ctx context.Context, userID string) (*models.Subscription, error)

	// Favorites returns the user's favorites ordered by creation time, oldest first.
	Favorites(ctx context.Context, userID string) ([]models.FavoritePage, error)
	InsertFavorite(ctx context.Context, userID, path, title, icon string) error
	DeleteFavorite(ctx context.Context, userID, path string) error
	DeleteAllFavorites(ctx context.Context, userID string) error

	// RecentPages returns up to limit entries, most recently visited first.
	RecentPages(ctx context.Context, userID string, limit int) ([]models.RecentPage, error)
	// UpsertRecentPage records a visit; the service keeps (userID, path) unique.
	UpsertRecentPage(ctx context.Context, userID, path, title, icon string) error
	DeleteAllRecent(ctx context.Context, userID string) error

	Progress(ctx context.Context, userID, toolID string) (models.ToolProgress, error)
	SetStepCompletion(ctx context.Context, userID, toolID, stepID string, p models.StepProgress) error
	Checklist(ctx context.Context, userID string) (models.ToolProgress, error)
	SetChecklistItem(ctx context.Context, userID, itemID string, p models.StepProgress) error
}
