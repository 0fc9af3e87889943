package models

// Landing routes per focus. Every caller that needs "where does this focus
// live" goes through FocusRoute instead of keeping its own copy.
var focusRoutes = map[Focus]string{
	FocusExplore:      "/dashboard/explore",
	FocusAIAutomation: "/dashboard/ai-automation",
	FocusWebDev:       "/dashboard/web-dev",
	FocusAIVideo:      "/dashboard/ai-video",
	FocusAdvanced:     "/dashboard/advanced",
}

const (
	RouteSignIn     = "/signin"
	RouteOnboarding = "/onboarding"
	RoutePayment    = "/payment"
)

// FocusRoute returns the landing page for f. Unknown values land on explore.
func FocusRoute(f Focus) string {
	if r, ok := focusRoutes[f]; ok {
		return r
	}
	return focusRoutes[FocusExplore]
}
