package routes

// Web route paths
const (
	// Public routes, only reachable while signed out
	RouteSignIn   = "/"
	RouteSignUp   = "/signup"
	RouteForgot   = "/forgot"
	RouteReset    = "/reset"
	RouteActivate = "/activate"

	// Private routes, only reachable while signed in
	RouteDashboard = "/dashboard"
	RouteProfile   = "/profile"

	// RedirectHint is the query flag set when a private route bounces to sign-in
	RedirectHint = "redirect"
)

// Mobile screens
const (
	// Auth stack
	ScreenSignIn      Screen = "SignIn"
	ScreenForgot      Screen = "Forgot"
	ScreenSignUp      Screen = "SignUp"
	ScreenUserCreated Screen = "UserCreated"

	// User stack
	ScreenDashboard          Screen = "Dashboard"
	ScreenSelectProvider     Screen = "SelectProvider"
	ScreenSelectDate         Screen = "SelectDate"
	ScreenAppointmentCreated Screen = "AppointmentCreated"
	ScreenProfile            Screen = "Profile"
)
