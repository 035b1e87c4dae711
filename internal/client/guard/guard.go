// Package guard gates access to the authenticated part of the client.
// It is a pure check over session state: no state of its own, no side
// effects beyond the redirect decision.
package guard

// Route identifies a navigable view.
type Route string

const (
	RouteLanding   Route = "landing"
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteWeather   Route = "weather"
	RouteDisease   Route = "disease"
	RouteMarket    Route = "market"
	RouteTips      Route = "tips"
	RouteSchemes   Route = "schemes"
	RouteForum     Route = "forum"
	RouteConnect   Route = "connect"
	RouteAIChat    Route = "ai-chat"
	RouteProfile   Route = "profile"
)

// Navigator performs a client-side redirect.
type Navigator func(Route)

// SessionReader is the slice of the session store the guard consults.
type SessionReader interface {
	IsAuthenticated() bool
}

// Public reports whether the route is reachable without a session.
func Public(r Route) bool {
	switch r {
	case RouteLanding, RouteLogin, RouteRegister:
		return true
	}
	return false
}

type Guard struct {
	session  SessionReader
	navigate Navigator
}

func New(session SessionReader, navigate Navigator) *Guard {
	return &Guard{session: session, navigate: navigate}
}

// Allow evaluates the gate for a navigation to r. The session is read
// synchronously on every evaluation; when an unauthenticated client targets
// a protected route the guard redirects to login and denies.
func (g *Guard) Allow(r Route) bool {
	if Public(r) {
		return true
	}
	if g.session.IsAuthenticated() {
		return true
	}
	g.navigate(RouteLogin)
	return false
}
