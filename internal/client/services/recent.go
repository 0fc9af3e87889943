package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/common"
)

type RecentPagesService interface {
	// List returns at most five pages, most recently visited first.
	List(ctx context.Context) ([]models.RecentPage, error)
	// Visit records a page view and returns the refetched list.
	Visit(ctx context.Context, path, title, icon string) ([]models.RecentPage, error)
	Clear(ctx context.Context) error
}

type recentPagesService struct {
	*Deps
}

func NewRecentPagesService(d *Deps) RecentPagesService {
	return &recentPagesService{Deps: d.init()}
}

func (s *recentPagesService) List(ctx context.Context) ([]models.RecentPage, error) {
	if s.guest(ctx) {
		return s.Guest.RecentPages(ctx), nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.remoteList(ctx, uid)
}

func (s *recentPagesService) remoteList(ctx context.Context, uid string) ([]models.RecentPage, error) {
	list, err := s.Remote.RecentPages(ctx, uid, models.MaxVisibleRecentPages)
	if err != nil {
		s.Log.Error(ctx, "list recent pages failed", "user_id", uid, "error", err)
		return nil, fmt.Errorf("list recent pages: %w", err)
	}
	return models.TopRecent(list, models.MaxVisibleRecentPages), nil
}

func (s *recentPagesService) Visit(ctx context.Context, path, title, icon string) ([]models.RecentPage, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, common.ErrEmptyPath
	}

	if s.guest(ctx) {
		unlock := s.locks.Lock(models.GuestUserID)
		defer unlock()

		if err := s.Guest.VisitPage(ctx, path, title, icon); err != nil {
			return nil, err
		}
		list := s.Guest.RecentPages(ctx)
		s.Bus.Publish(events.TopicRecentPagesChanged)
		return list, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(uid)
	defer unlock()

	if err := s.Remote.UpsertRecentPage(ctx, uid, path, title, icon); err != nil {
		s.Log.Error(ctx, "record visit failed", "user_id", uid, "path", path, "error", err)
		return nil, fmt.Errorf("record visit: %w", err)
	}
	list, err := s.remoteList(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.Bus.Publish(events.TopicRecentPagesChanged)
	return list, nil
}

func (s *recentPagesService) Clear(ctx context.Context) error {
	if s.guest(ctx) {
		unlock := s.locks.Lock(models.GuestUserID)
		defer unlock()

		if err := s.Guest.ClearRecentPages(ctx); err != nil {
			return err
		}
		s.Bus.Publish(events.TopicRecentPagesChanged)
		return nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(uid)
	defer unlock()

	if err := s.Remote.DeleteAllRecent(ctx, uid); err != nil {
		return fmt.Errorf("clear recent pages: %w", err)
	}
	s.Bus.Publish(events.TopicRecentPagesChanged)
	return nil
}
