package api

// API path constants
// Every endpoint the client calls is listed here; query parameters are added per call.
const (
	// Session Routes
	RouteAccessToken    = "/sessions/access-token"
	RouteForgotPassword = "/sessions/forgot-password"
	RouteResetPassword  = "/sessions/reset-password"

	// User Routes
	RouteUsers         = "/users"
	RouteUserActivate  = "/users/activate"
	RouteUserPassword  = "/users/password"
	RouteUserAvatar    = "/users/file"
	RouteUserSchedules = "/users/me"

	// Provider Routes
	RouteProviders                 = "/providers"
	RouteProviderSchedule          = "/providers/me"
	RouteProviderMonthAvailability = "/providers/month-availability"
	RouteProviderDayAvailability   = "/providers/day-availability"
	RouteProviderNotifications     = "/providers/notifications"

	// Appointment Routes
	RouteAppointments = "/appointments"
)
