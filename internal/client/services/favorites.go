package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/common"
)

type FavoritesService interface {
	// List returns the favorites, oldest first.
	List(ctx context.Context) ([]models.FavoritePage, error)
	// Add favorites path unless it already is one, evicting the oldest entry
	// at capacity. It returns the refetched list.
	Add(ctx context.Context, path, title, icon string) ([]models.FavoritePage, error)
	Remove(ctx context.Context, path string) ([]models.FavoritePage, error)
	Clear(ctx context.Context) error
	IsFavorite(ctx context.Context, path string) (bool, error)
}

type favoritesService struct {
	*Deps
}

func NewFavoritesService(d *Deps) FavoritesService {
	return &favoritesService{Deps: d.init()}
}

func (s *favoritesService) List(ctx context.Context) ([]models.FavoritePage, error) {
	if s.guest(ctx) {
		return s.Guest.Favorites(ctx), nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.remoteList(ctx, uid)
}

func (s *favoritesService) remoteList(ctx context.Context, uid string) ([]models.FavoritePage, error) {
	list, err := s.Remote.Favorites(ctx, uid)
	if err != nil {
		s.Log.Error(ctx, "list favorites failed", "user_id", uid, "error", err)
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if list == nil {
		list = []models.FavoritePage{}
	}
	return list, nil
}

func (s *favoritesService) IsFavorite(ctx context.Context, path string) (bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return models.FindFavorite(list, path) >= 0, nil
}

func (s *favoritesService) Add(ctx context.Context, path, title, icon string) ([]models.FavoritePage, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, common.ErrEmptyPath
	}

	if s.guest(ctx) {
		unlock := s.locks.Lock(models.GuestUserID)
		defer unlock()

		if err := s.Guest.AddFavorite(ctx, path, title, icon); err != nil {
			return nil, err
		}
		list := s.Guest.Favorites(ctx)
		s.Bus.Publish(events.TopicFavoritesChanged)
		return list, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(uid)
	defer unlock()

	list, err := s.remoteList(ctx, uid)
	if err != nil {
		return nil, err
	}
	if models.FindFavorite(list, path) < 0 {
		for len(list) >= models.MaxFavorites {
			oldest := models.OldestFavorite(list)
			if err := s.Remote.DeleteFavorite(ctx, uid, list[oldest].Path); err != nil {
				return nil, fmt.Errorf("evict favorite: %w", err)
			}
			s.Log.Debug(ctx, "evicted oldest favorite", "user_id", uid, "path", list[oldest].Path)
			list = append(list[:oldest:oldest], list[oldest+1:]...)
		}
		if err := s.Remote.InsertFavorite(ctx, uid, path, title, icon); err != nil {
			return nil, fmt.Errorf("insert favorite: %w", err)
		}
	}

	list, err = s.remoteList(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.Bus.Publish(events.TopicFavoritesChanged)
	return list, nil
}

func (s *favoritesService) Remove(ctx context.Context, path string) ([]models.FavoritePage, error) {
	if s.guest(ctx) {
		unlock := s.locks.Lock(models.GuestUserID)
		defer unlock()

		if err := s.Guest.RemoveFavorite(ctx, path); err != nil {
			return nil, err
		}
		list := s.Guest.Favorites(ctx)
		s.Bus.Publish(events.TopicFavoritesChanged)
		return list, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(uid)
	defer unlock()

	if err := s.Remote.DeleteFavorite(ctx, uid, path); err != nil {
		return nil, fmt.Errorf("delete favorite: %w", err)
	}
	list, err := s.remoteList(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.Bus.Publish(events.TopicFavoritesChanged)
	return list, nil
}

func (s *favoritesService) Clear(ctx context.Context) error {
	if s.guest(ctx) {
		unlock := s.locks.Lock(models.GuestUserID)
		defer unlock()

		if err := s.Guest.ClearFavorites(ctx); err != nil {
			return err
		}
		s.Bus.Publish(events.TopicFavoritesChanged)
		return nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(uid)
	defer unlock()

	if err := s.Remote.DeleteAllFavorites(ctx, uid); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	s.Bus.Publish(events.TopicFavoritesChanged)
	return nil
}
