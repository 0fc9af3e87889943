package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/acadium/dashboard/internal/client/models"
)

func printProgress(title string, p models.ToolProgress) {
	if len(p) == 0 {
		printlnFn(fmt.Sprintf("%s: nothing recorded.", title))
		return
	}
	printlnFn(fmt.Sprintf("%s: %d/%d completed", title, p.CompletedCount(), len(p)))

	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s := p[id]
		mark := " "
		if s.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s", mark, id)
		if s.Notes != "" {
			line += "  " + s.Notes
		}
		printlnFn(line)
	}
}

// Progress prints the step completion of one tool: progress <tool>.
func (a *App) Progress(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: progress <tool>")
		return nil
	}
	p, err := a.progressService.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printProgress(args[0], p)
	return nil
}

// Step toggles a tool step: step <tool> <step> done|undo. Completing a step
// prompts for an optional note.
func (a *App) Step(ctx context.Context, args []string) error {
	if len(args) != 3 {
		printlnFn("Usage: step <tool> <step> done|undo")
		return nil
	}
	completed, err := parseToggle(args[2])
	if err != nil {
		return err
	}

	var note string
	if completed {
		note, err = GetMultiline(a.reader, "Note (optional)", a.out)
		if err != nil {
			return err
		}
	}

	if err := a.progressService.SetStep(ctx, args[0], args[1], completed, note); err != nil {
		return err
	}

	p, err := a.progressService.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printProgress(args[0], p)
	return nil
}

// Checklist prints the onboarding checklist, or toggles an item with
// "checklist <item> done|undo".
func (a *App) Checklist(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
	case 2:
		completed, err := parseToggle(args[1])
		if err != nil {
			return err
		}
		if err := a.progressService.SetChecklistItem(ctx, args[0], completed); err != nil {
			return err
		}
	default:
		printlnFn("Usage: checklist [<item> done|undo]")
		return nil
	}

	p, err := a.progressService.Checklist(ctx)
	if err != nil {
		return err
	}
	printProgress("checklist", p)
	return nil
}

// Route prints where the dashboard guard sends the current user.
func (a *App) Route(ctx context.Context) error {
	d := a.guard.Evaluate(ctx)
	if d.Err != nil {
		printlnFn(fmt.Sprintf("%s (fallback: %v)", d.Route, d.Err))
		return nil
	}
	printlnFn(d.Route)
	return nil
}
