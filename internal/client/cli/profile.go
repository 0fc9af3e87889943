package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/acadium/dashboard/internal/client/avatar"
	"github.com/acadium/dashboard/internal/client/models"
)

// readFile is a test seam for avatar uploads.
var readFile = os.ReadFile

func (a *App) printProfile(ctx context.Context, p *models.Profile) {
	printlnFn(fmt.Sprintf("Name:       %s", p.Name))
	printlnFn(fmt.Sprintf("Focus:      %s (%s)", p.Focus, models.FocusRoute(p.Focus)))
	printlnFn(fmt.Sprintf("Skill:      %s", p.SkillLevel))
	printlnFn(fmt.Sprintf("Onboarded:  %t", p.OnboardingCompleted))
	if p.AvatarURL != "" {
		url, err := a.avatars.URL(ctx, p)
		if err != nil {
			a.log.Warn(ctx, "resolve avatar", "error", err)
			url = p.AvatarURL
		}
		printlnFn(fmt.Sprintf("Avatar:     %s", url))
	}
}

// Profile prints the current profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Get(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		printlnFn("No profile yet, run 'onboard'.")
		return nil
	}
	a.printProfile(ctx, p)
	return nil
}

// Onboard walks through the onboarding questions and creates the profile.
func (a *App) Onboard(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	focusNames := make([]string, 0, len(models.Focuses()))
	for _, f := range models.Focuses() {
		focusNames = append(focusNames, string(f))
	}
	rawFocus, err := getSimpleText(a.reader, "Pick a focus: "+strings.Join(focusNames, ", "), a.out)
	if err != nil {
		return err
	}
	focus, err := models.ParseFocus(rawFocus)
	if err != nil {
		return err
	}

	rawSkill, err := getSimpleText(a.reader, "Skill level: beginner, intermediate, pro", a.out)
	if err != nil {
		return err
	}
	skill, err := models.ParseSkillLevel(rawSkill)
	if err != nil {
		return err
	}

	referral, err := getSimpleText(a.reader, "Referral code (optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.profileService.CompleteOnboarding(ctx, models.OnboardingInput{
		Name:         name,
		Focus:        focus,
		SkillLevel:   skill,
		ReferralCode: referral,
	})
	if err != nil {
		return err
	}

	printlnFn("Onboarding complete.")
	a.printProfile(ctx, p)
	return nil
}

// Focus changes the profile focus: focus <focus>.
func (a *App) Focus(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: focus <focus>")
		return nil
	}
	f, err := models.ParseFocus(args[0])
	if err != nil {
		return err
	}
	p, err := a.profileService.UpdateFocus(ctx, f)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Focus is now %s, landing on %s", p.Focus, models.FocusRoute(p.Focus)))
	return nil
}

// Avatar uploads a new avatar or prints the resolved URL:
//
//	avatar upload <file>
//	avatar show
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: avatar upload <file> | avatar show")
		return nil
	}

	switch args[0] {
	case "show":
		p, err := a.profileService.Get(ctx)
		if err != nil {
			return err
		}
		url, err := a.avatars.URL(ctx, p)
		if err != nil {
			return err
		}
		if url == "" {
			printlnFn("No avatar.")
			return nil
		}
		printlnFn(url)
		return nil

	case "upload":
		if len(args) != 2 {
			printlnFn("Usage: avatar upload <file>")
			return nil
		}
		if !a.avatars.Enabled() {
			return avatar.ErrNotConfigured
		}
		id, err := a.identityService.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if id == nil {
			return errors.New("sign in or start a guest session first")
		}

		data, err := readFile(args[1])
		if err != nil {
			return err
		}
		key, err := a.avatars.Upload(ctx, id.ID, http.DetectContentType(data), data)
		if err != nil {
			return err
		}
		if _, err := a.profileService.SetAvatar(ctx, key); err != nil {
			return err
		}
		printlnFn("Avatar updated.")
		return nil

	default:
		printlnFn("Usage: avatar upload <file> | avatar show")
		return nil
	}
}

// Plan prints the subscription.
func (a *App) Plan(ctx context.Context) error {
	s, err := a.subscriptionService.Get(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		printlnFn("No active subscription.")
		return nil
	}
	line := fmt.Sprintf("Plan %s: %s", s.PlanID, s.Status)
	if s.CurrentPeriodEnd != nil {
		line += fmt.Sprintf(", renews %s", s.CurrentPeriodEnd.Format("2006-01-02"))
		if s.CancelAtPeriodEnd {
			line += " (cancels at period end)"
		}
	}
	printlnFn(line)
	return nil
}
