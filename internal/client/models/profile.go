package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/acadium/dashboard/internal/common"
)

// Focus is the learning track a user picked during onboarding. Profiles store
// it twice, as Mission and Focus; callers keep both equal.
type Focus string

const (
	FocusExplore      Focus = "explore"
	FocusAIAutomation Focus = "ai-automation"
	FocusWebDev       Focus = "web-dev"
	FocusAIVideo      Focus = "ai-video"
	FocusAdvanced     Focus = "advanced"
)

var focuses = []Focus{FocusExplore, FocusAIAutomation, FocusWebDev, FocusAIVideo, FocusAdvanced}

// Focuses lists every known focus in display order.
func Focuses() []Focus {
	return append([]Focus(nil), focuses...)
}

func (f Focus) Valid() bool {
	for _, known := range focuses {
		if f == known {
			return true
		}
	}
	return false
}

func ParseFocus(s string) (Focus, error) {
	f := Focus(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidFocus, s)
	}
	return f, nil
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillPro          SkillLevel = "pro"
)

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillPro:
		return true
	}
	return false
}

func ParseSkillLevel(s string) (SkillLevel, error) {
	l := SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidSkillLevel, s)
	}
	return l, nil
}

// Profile belongs to exactly one Identity and is created when onboarding
// completes.
type Profile struct {
	UserID              string     `json:"user_id"`
	Name                string     `json:"name"`
	Mission             Focus      `json:"mission"`
	Focus               Focus      `json:"focus"`
	SkillLevel          SkillLevel `json:"skill_level"`
	ReferralCode        string     `json:"referral_code,omitempty"`
	AvatarURL           string     `json:"avatar_url,omitempty"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SetFocus moves the profile to f, keeping mission in step with it.
func (p *Profile) SetFocus(f Focus, now time.Time) {
	p.Mission = f
	p.Focus = f
	p.UpdatedAt = now.UTC()
}

// OnboardingInput carries the answers collected by the onboarding wizard.
type OnboardingInput struct {
	Name         string
	Focus        Focus
	SkillLevel   SkillLevel
	ReferralCode string
}

func (in OnboardingInput) Validate() error {
	if !in.Focus.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidFocus, in.Focus)
	}
	if !in.SkillLevel.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidSkillLevel, in.SkillLevel)
	}
	return nil
}

// NewProfile builds the profile written at the end of onboarding.
func NewProfile(userID string, in OnboardingInput, now time.Time) *Profile {
	now = now.UTC()
	return &Profile{
		UserID:              userID,
		Name:                strings.TrimSpace(in.Name),
		Mission:             in.Focus,
		Focus:               in.Focus,
		SkillLevel:          in.SkillLevel,
		ReferralCode:        strings.TrimSpace(in.ReferralCode),
		OnboardingCompleted: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
