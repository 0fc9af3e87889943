package guest

import (
	"context"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/acadium/dashboard/internal/client/session"
)

// progressDoc is the stored shape of {prefix}progress: tool id → step id → record.
type progressDoc map[string]models.ToolProgress

// Progress returns the step records of one tool. The map is never nil.
func (f *Facade) Progress(ctx context.Context, toolID string) models.ToolProgress {
	if !f.active(ctx) {
		return models.ToolProgress{}
	}
	doc, _ := read[progressDoc](ctx, f, session.KeyProgress)
	if steps, ok := doc[toolID]; ok && steps != nil {
		return steps
	}
	return models.ToolProgress{}
}

// SetStepCompletion marks (toolID, stepID). Marking a step incomplete keeps
// the key with completed=false and no timestamp or note.
func (f *Facade) SetStepCompletion(ctx context.Context, toolID, stepID string, completed bool, note string) error {
	if !f.active(ctx) {
		return nil
	}
	doc, ok := read[progressDoc](ctx, f, session.KeyProgress)
	if !ok || doc == nil {
		doc = progressDoc{}
	}
	if doc[toolID] == nil {
		doc[toolID] = models.ToolProgress{}
	}
	doc[toolID][stepID] = models.MarkStep(completed, note, f.now())
	return f.write(ctx, session.KeyProgress, doc)
}

// Checklist returns the guest checklist, item id → record.
func (f *Facade) Checklist(ctx context.Context) models.ToolProgress {
	if !f.active(ctx) {
		return models.ToolProgress{}
	}
	items, ok := read[models.ToolProgress](ctx, f, session.KeyChecklist)
	if !ok || items == nil {
		return models.ToolProgress{}
	}
	return items
}

func (f *Facade) SetChecklistItem(ctx context.Context, itemID string, completed bool) error {
	if !f.active(ctx) {
		return nil
	}
	items := f.Checklist(ctx)
	items[itemID] = models.MarkStep(completed, "", f.now())
	return f.write(ctx, session.KeyChecklist, items)
}
