package cache

// Store keys of the three cache entries. They live outside the guest prefix
// so guest teardown never touches them.
const (
	KeyUser         = "acadium_cache_user"
	KeyProfile      = "acadium_cache_profile"
	KeySubscription = "acadium_cache_subscription"
)

// Family labels used in logs and metrics.
const (
	FamilyIdentity     = "identity"
	FamilyProfile      = "profile"
	FamilySubscription = "subscription"
)
