package models

import "time"

// Well-known values for the local guest account. The guest never exists on
// the remote service; these constants only ever live in the local store.
const (
	GuestUserID    = "00000000-0000-0000-0000-00000000cafe"
	GuestUserEmail = "guest@acadium.local"
	GuestPlanID    = "guest"
)

// Identity is the authenticated user of a session.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// IsGuest reports whether i is the guest sentinel.
func (i Identity) IsGuest() bool {
	return i.ID == GuestUserID
}

// GuestIdentity returns the sentinel identity used while guest mode is active.
func GuestIdentity(createdAt time.Time) Identity {
	return Identity{
		ID:        GuestUserID,
		Email:     GuestUserEmail,
		CreatedAt: createdAt.UTC(),
	}
}
