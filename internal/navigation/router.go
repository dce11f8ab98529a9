package navigation

import "tunr-web/internal/session"

// Outcome is where a navigation ends up after resolving.
type Outcome int

const (
	OutcomeRender Outcome = iota
	OutcomeRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// RenderPlan is everything the web layer needs to answer a navigation.
type RenderPlan struct {
	Outcome Outcome
	Path    string

	// Render outcome.
	View      View
	Params    Params
	Protected bool
	ShowNav   bool

	// Redirect outcome.
	Redirect string
	From     string
}

// Router maps paths to render plans.
type Router struct {
	table  *Table
	chrome *Chrome
}

func NewRouter(table *Table, chrome *Chrome) *Router {
	return &Router{table: table, chrome: chrome}
}

// DefaultRouter wires the Tunr route table and chrome rules.
func DefaultRouter() *Router {
	return NewRouter(DefaultTable(), DefaultChrome())
}

func (r *Router) Table() *Table { return r.table }

// Resolve decides one navigation. It is synchronous and depends only on
// the path and the already-derived session.
func (r *Router) Resolve(path string, s session.Session) RenderPlan {
	path = Normalize(path)

	route, params, ok := r.table.Match(path)
	if !ok {
		return RenderPlan{
			Outcome: OutcomeRender,
			Path:    path,
			View:    ViewNotFound,
			Params:  Params{},
			ShowNav: r.chrome.ShouldShowNav(path, s),
		}
	}

	if route.Protected {
		if d := Guard(path, s); !d.Allow {
			return RenderPlan{
				Outcome:  OutcomeRedirect,
				Path:     path,
				Redirect: d.Redirect,
				From:     d.From,
			}
		}
	}

	if name, optional := route.Pattern.Param(); optional && params[name] == "" && route.Default != nil {
		params[name] = route.Default(s)
	}

	return RenderPlan{
		Outcome:   OutcomeRender,
		Path:      path,
		View:      route.View,
		Params:    params,
		Protected: route.Protected,
		ShowNav:   r.chrome.ShouldShowNav(path, s),
	}
}
