package navigation

import "tunr-web/internal/session"

// Decision is the guard's verdict for one protected navigation.
type Decision struct {
	Allow bool

	// Redirect and From are set when Allow is false: go to Redirect and
	// come back to From after logging in.
	Redirect string
	From     string
}

// Guard admits logged-in sessions and sends everyone else to the login
// view, remembering where they were going.
func Guard(requestedPath string, s session.Session) Decision {
	if s.IsLoggedIn {
		return Decision{Allow: true}
	}
	return Decision{Redirect: LoginPath, From: requestedPath}
}
