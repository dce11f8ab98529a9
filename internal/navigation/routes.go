package navigation

import (
	"fmt"

	"tunr-web/internal/session"
)

// View names a page the web layer knows how to render.
type View string

const (
	ViewLanding     View = "landing"
	ViewLogin       View = "login"
	ViewSignup      View = "signup"
	ViewHome        View = "home"
	ViewSearch      View = "search"
	ViewPreferences View = "preferences"
	ViewWelcome     View = "welcome"
	ViewLibrary     View = "library"
	ViewMusic       View = "music"
	ViewFeed        View = "feed"
	ViewCommunity   View = "community"
	ViewMovie       View = "movie"
	ViewProfile     View = "profile"
	ViewNotFound    View = "notfound"
)

// LoginPath is where the guard sends anonymous visitors.
const LoginPath = "/login"

// DefaultFunc supplies a value for an absent optional parameter.
type DefaultFunc func(s session.Session) string

// Route binds a pattern to a view.
type Route struct {
	Pattern   Pattern
	View      View
	Protected bool

	// Default fills the optional parameter when the path omits it.
	Default DefaultFunc
}

// Table is an ordered route list evaluated first-match-wins.
type Table struct {
	routes []Route
}

// NewTable validates and builds a route table. Patterns must be unique and
// a catch-all, if present, must be the last entry.
func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]bool, len(routes))

	for i, r := range routes {
		key := r.Pattern.String()
		if key == "" {
			return nil, fmt.Errorf("navigation: route %d has no pattern", i)
		}
		if seen[key] {
			return nil, fmt.Errorf("navigation: duplicate route pattern %q", key)
		}
		seen[key] = true

		if r.Pattern.catchAll && i != len(routes)-1 {
			return nil, fmt.Errorf("navigation: catch-all must be the last route")
		}
		if r.View == "" {
			return nil, fmt.Errorf("navigation: route %q has no view", key)
		}
		if r.Default != nil {
			if _, optional := r.Pattern.Param(); !optional {
				return nil, fmt.Errorf("navigation: route %q has a default but no optional parameter", key)
			}
		}
	}

	return &Table{routes: append([]Route(nil), routes...)}, nil
}

// Match returns the first route matching path.
func (t *Table) Match(path string) (Route, Params, bool) {
	for _, r := range t.routes {
		if params, ok := r.Pattern.Match(path); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// Routes returns a copy of the table in evaluation order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

func currentUsername(s session.Session) string {
	return s.Username
}

// DefaultTable is the Tunr route surface.
func DefaultTable() *Table {
	public := func(pattern string, v View) Route {
		return Route{Pattern: MustPattern(pattern), View: v}
	}
	protected := func(pattern string, v View) Route {
		return Route{Pattern: MustPattern(pattern), View: v, Protected: true}
	}

	profile := protected("/profile/:username?", ViewProfile)
	profile.Default = currentUsername

	t, err := NewTable(
		public("/", ViewLanding),
		public(LoginPath, ViewLogin),
		public("/signup", ViewSignup),

		protected("/home", ViewHome),
		protected("/search", ViewSearch),
		protected("/preferences", ViewPreferences),
		protected("/welcome", ViewWelcome),
		protected("/library", ViewLibrary),
		protected("/music", ViewMusic),
		protected("/feed", ViewFeed),
		protected("/community", ViewCommunity),
		protected("/movie/:id", ViewMovie),
		profile,

		public("*", ViewNotFound),
	)
	if err != nil {
		panic(err)
	}
	return t
}
