package services

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
)

type IdentityService interface {
	// CurrentUser returns the guest identity in guest mode, otherwise the
	// signed-in identity (cached). nil means nobody is signed in.
	CurrentUser(ctx context.Context) (*models.Identity, error)
}

type identityService struct {
	*Deps
}

func NewIdentityService(d *Deps) IdentityService {
	return &identityService{Deps: d.init()}
}

func (s *identityService) CurrentUser(ctx context.Context) (*models.Identity, error) {
	return s.Cache.CurrentUser(ctx)
}
