package services

import (
	"context"
	"fmt"

	"github.com/acadium/dashboard/internal/client/events"
	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/common"
)

type ProfileService interface {
	// Get returns the current profile, or nil when onboarding has not
	// produced one yet.
	Get(ctx context.Context) (*models.Profile, error)
	// CompleteOnboarding creates the profile from the wizard answers. A
	// profile that already finished onboarding is returned unchanged.
	CompleteOnboarding(ctx context.Context, in models.OnboardingInput) (*models.Profile, error)
	// UpdateFocus moves the profile to a new focus; mission follows.
	UpdateFocus(ctx context.Context, focus models.Focus) (*models.Profile, error)
	// SetAvatar stores ref (an object key or absolute URL) as the avatar.
	SetAvatar(ctx context.Context, ref string) (*models.Profile, error)
}

type profileService struct {
	*Deps
}

func NewProfileService(d *Deps) ProfileService {
	return &profileService{Deps: d.init()}
}

func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	if s.guest(ctx) {
		p, _ := s.Guest.Profile(ctx)
		return p, nil
	}

	uid := s.Auth.UserID()
	if uid == "" {
		return nil, nil
	}
	return s.Cache.Profile(ctx, uid)
}

func (s *profileService) CompleteOnboarding(ctx context.Context, in models.OnboardingInput) (*models.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if s.guest(ctx) {
		if existing, ok := s.Guest.Profile(ctx); ok && existing.OnboardingCompleted {
			return existing, nil
		}
		p := models.NewProfile(models.GuestUserID, in, s.Now())
		if err := s.Guest.SaveProfile(ctx, p); err != nil {
			return nil, err
		}
		s.Bus.Publish(events.TopicProfileUpdated)
		return p, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	existing, err := s.Remote.Profile(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if existing != nil && existing.OnboardingCompleted {
		return existing, nil
	}

	p := models.NewProfile(uid, in, s.Now())
	if existing != nil {
		p.CreatedAt = existing.CreatedAt
		p.AvatarURL = existing.AvatarURL
	}
	if err := s.Remote.UpsertProfile(ctx, p); err != nil {
		s.Log.Error(ctx, "complete onboarding failed", "user_id", uid, "error", err)
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.Cache.SetProfile(ctx, *p, uid)
	s.Bus.Publish(events.TopicProfileUpdated)
	return p, nil
}

func (s *profileService) UpdateFocus(ctx context.Context, focus models.Focus) (*models.Profile, error) {
	if !focus.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidFocus, focus)
	}

	if s.guest(ctx) {
		p, err := s.Guest.UpdateFocus(ctx, focus)
		if err != nil {
			return nil, err
		}
		s.Bus.Publish(events.TopicProfileUpdated)
		return p, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	p, err := s.Cache.Profile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile of %s: %w", uid, common.ErrorNotFound)
	}

	p.SetFocus(focus, s.Now())
	if err := s.Remote.UpsertProfile(ctx, p); err != nil {
		s.Log.Error(ctx, "update focus failed", "user_id", uid, "error", err)
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.Cache.SetProfile(ctx, *p, uid)
	s.Bus.Publish(events.TopicProfileUpdated)
	return p, nil
}

func (s *profileService) SetAvatar(ctx context.Context, ref string) (*models.Profile, error) {
	if s.guest(ctx) {
		p, ok := s.Guest.Profile(ctx)
		if !ok {
			return nil, fmt.Errorf("guest profile: %w", common.ErrorNotFound)
		}
		p.AvatarURL = ref
		if err := s.Guest.SaveProfile(ctx, p); err != nil {
			return nil, err
		}
		s.Bus.Publish(events.TopicProfileUpdated)
		return p, nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	p, err := s.Cache.Profile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile of %s: %w", uid, common.ErrorNotFound)
	}

	p.AvatarURL = ref
	p.UpdatedAt = s.Now().UTC()
	if err := s.Remote.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.Cache.SetProfile(ctx, *p, uid)
	s.Bus.Publish(events.TopicProfileUpdated)
	return p, nil
}
