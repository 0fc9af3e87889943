package session

// Local store layout for guest records. Everything a guest owns sits under
// GuestPrefix so ExitGuest can drop it in one call.
const (
	GuestPrefix = "acadium_guest_"

	KeyMode      = GuestPrefix + "mode"
	KeyUser      = GuestPrefix + "user"
	KeyProfile   = GuestPrefix + "profile"
	KeyProgress  = GuestPrefix + "progress"
	KeyChecklist = GuestPrefix + "checklist"
	KeyFavorites = GuestPrefix + "favorites"
	KeyRecent    = GuestPrefix + "recent"
)
