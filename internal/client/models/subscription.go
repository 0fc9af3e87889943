package models

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

type Subscription struct {
	UserID            string             `json:"user_id"`
	PlanID            string             `json:"plan_id"`
	Status            SubscriptionStatus `json:"status"`
	CurrentPeriodEnd  *time.Time         `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool               `json:"cancel_at_period_end"`
}

func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == SubscriptionActive
}

// GuestSubscription is the always-active plan handed to guests. No billing
// record backs it.
func GuestSubscription() Subscription {
	return Subscription{
		UserID: GuestUserID,
		PlanID: GuestPlanID,
		Status: SubscriptionActive,
	}
}
