// Package navigation models the client's page routing as an explicit state
// machine instead of a mutable page token: a fixed set of views and a pure
// transition function over (current view, requested view, session presence).
package navigation

// View is one screen of the platform.
type View string

const (
	ViewHome        View = "home"
	ViewPhilosophy  View = "philosophy"
	ViewHowItWorks  View = "how-it-works"
	ViewPartners    View = "partners"
	ViewBlog        View = "blog"
	ViewHub         View = "hub"
	ViewLogin       View = "login"
	ViewSignup      View = "signup"
	ViewProfile     View = "profile"
	ViewEditProfile View = "edit-profile"
)

var allViews = map[View]bool{
	ViewHome:        true,
	ViewPhilosophy:  true,
	ViewHowItWorks:  true,
	ViewPartners:    true,
	ViewBlog:        true,
	ViewHub:         true,
	ViewLogin:       true,
	ViewSignup:      true,
	ViewProfile:     true,
	ViewEditProfile: true,
}

// gated views require a session; without one they resolve to the login view.
var gated = map[View]bool{
	ViewHub:         true,
	ViewProfile:     true,
	ViewEditProfile: true,
}

// Valid reports whether v names a known view.
func Valid(v View) bool {
	return allViews[v]
}

// Gated reports whether v requires a session.
func Gated(v View) bool {
	return gated[v]
}

// Transition resolves a navigation request. Unknown requests stay on the
// current view (or home when the current view is itself unknown). Gated
// views redirect anonymous visitors to login; login and signup resolve to
// the hub once a session exists.
func Transition(current, request View, sessionPresent bool) View {
	if !Valid(request) {
		if Valid(current) {
			return current
		}
		return ViewHome
	}

	if gated[request] && !sessionPresent {
		return ViewLogin
	}

	if (request == ViewLogin || request == ViewSignup) && sessionPresent {
		return ViewHub
	}

	return request
}
