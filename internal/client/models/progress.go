package models

import "time"

// StepProgress records completion of one onboarding/tool step or checklist item.
// An incomplete record is kept with Completed=false rather than deleted.
type StepProgress struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// MarkStep builds the record for a completion toggle.
func MarkStep(completed bool, note string, now time.Time) StepProgress {
	if !completed {
		return StepProgress{}
	}
	at := now.UTC()
	return StepProgress{Completed: true, CompletedAt: &at, Notes: note}
}

// ToolProgress maps step id to its progress record for one tool.
type ToolProgress map[string]StepProgress

// CompletedCount returns the number of completed steps.
func (p ToolProgress) CompletedCount() int {
	n := 0
	for _, s := range p {
		if s.Completed {
			n++
		}
	}
	return n
}
