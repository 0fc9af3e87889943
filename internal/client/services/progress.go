package services

import (
	"context"
	"fmt"

	"github.com/acadium/dashboard/internal/client/models"
)

type ProgressService interface {
	Get(ctx context.Context, toolID string) (models.ToolProgress, error)
	// SetStep marks a tool step complete or incomplete. An incomplete step
	// keeps its record with completed=false.
	SetStep(ctx context.Context, toolID, stepID string, completed bool, note string) error
	Checklist(ctx context.Context) (models.ToolProgress, error)
	SetChecklistItem(ctx context.Context, itemID string, completed bool) error
}

type progressService struct {
	*Deps
}

func NewProgressService(d *Deps) ProgressService {
	return &progressService{Deps: d.init()}
}

func (s *progressService) Get(ctx context.Context, toolID string) (models.ToolProgress, error) {
	if s.guest(ctx) {
		return s.Guest.Progress(ctx, toolID), nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	p, err := s.Remote.Progress(ctx, uid, toolID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p == nil {
		p = models.ToolProgress{}
	}
	return p, nil
}

func (s *progressService) SetStep(ctx context.Context, toolID, stepID string, completed bool, note string) error {
	if s.guest(ctx) {
		return s.Guest.SetStepCompletion(ctx, toolID, stepID, completed, note)
	}

	uid, err := s.requireUser()
	if err != nil {
		return err
	}
	if err := s.Remote.SetStepCompletion(ctx, uid, toolID, stepID, models.MarkStep(completed, note, s.Now())); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *progressService) Checklist(ctx context.Context) (models.ToolProgress, error) {
	if s.guest(ctx) {
		return s.Guest.Checklist(ctx), nil
	}

	uid, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	p, err := s.Remote.Checklist(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	if p == nil {
		p = models.ToolProgress{}
	}
	return p, nil
}

func (s *progressService) SetChecklistItem(ctx context.Context, itemID string, completed bool) error {
	if s.guest(ctx) {
		return s.Guest.SetChecklistItem(ctx, itemID, completed)
	}

	uid, err := s.requireUser()
	if err != nil {
		return err
	}
	if err := s.Remote.SetChecklistItem(ctx, uid, itemID, models.MarkStep(completed, "", s.Now())); err != nil {
		return fmt.Errorf("save checklist: %w", err)
	}
	return nil
}
