package services

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
)

type SubscriptionService interface {
	// Get returns the active subscription, the guest plan in guest mode, or
	// nil when the signed-in user has none.
	Get(ctx context.Context) (*models.Subscription, error)
	IsActive(ctx context.Context) (bool, error)
}

type subscriptionService struct {
	*Deps
}

func NewSubscriptionService(d *Deps) SubscriptionService {
	return &subscriptionService{Deps: d.init()}
}

func (s *subscriptionService) Get(ctx context.Context) (*models.Subscription, error) {
	if s.guest(ctx) {
		sub := models.GuestSubscription()
		return &sub, nil
	}

	uid := s.Auth.UserID()
	if uid == "" {
		return nil, nil
	}
	return s.Cache.Subscription(ctx, uid)
}

func (s *subscriptionService) IsActive(ctx context.Context) (bool, error) {
	sub, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return sub.IsActive(), nil
}
