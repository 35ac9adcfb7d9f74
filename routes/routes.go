package routes

import (
	"net/url"
	"strings"
)

// Descriptor names a destination and whether it needs a session.
type Descriptor struct {
	Path    string
	Private bool
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allowed bool
	// Redirect is where to go instead when not allowed, e.g. "/?redirect=true".
	Redirect string
	// From is the path that was asked for.
	From string
}

// ToSignIn reports whether the decision bounces a signed-out visitor to the sign-in page.
func (d Decision) ToSignIn() bool {
	return !d.Allowed && strings.HasPrefix(d.Redirect, RouteSignIn+"?")
}

// Resolve allows route exactly when its privacy matches the session state. A private route
// without a session redirects to sign-in with the redirect hint; a public route with a session
// redirects to the dashboard.
func Resolve(route Descriptor, hasSession bool) Decision {
	if route.Private == hasSession {
		return Decision{Allowed: true, From: route.Path}
	}
	if route.Private {
		q := url.Values{}
		q.Set(RedirectHint, "true")
		return Decision{Redirect: RouteSignIn + "?" + q.Encode(), From: route.Path}
	}
	return Decision{Redirect: RouteDashboard, From: route.Path}
}

// Web is the browser client's route table.
var Web = []Descriptor{
	{Path: RouteSignIn},
	{Path: RouteSignUp},
	{Path: RouteForgot},
	{Path: RouteReset},
	{Path: RouteActivate},
	{Path: RouteDashboard, Private: true},
	{Path: RouteProfile, Private: true},
}

// Lookup finds the web route for path. Query strings and trailing slashes are ignored.
func Lookup(path string) (Descriptor, bool) {
	path, _, _ = strings.Cut(path, "?")
	if path != RouteSignIn {
		path = strings.TrimRight(path, "/")
	}
	for _, d := range Web {
		if d.Path == path {
			return d, true
		}
	}
	return Descriptor{}, false
}

// MustLookup is Lookup for paths known at compile time.
func MustLookup(path string) Descriptor {
	d, ok := Lookup(path)
	if !ok {
		panic("unknown route " + path)
	}
	return d
}
