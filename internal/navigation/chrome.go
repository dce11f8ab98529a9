package navigation

import (
	"strings"

	"tunr-web/internal/session"
)

// PathMatcher decides chrome eligibility for a single rule.
type PathMatcher struct {
	Value  string
	Prefix bool
}

func (m PathMatcher) Matches(path string) bool {
	if m.Prefix {
		return strings.HasPrefix(path, m.Value)
	}
	return path == m.Value
}

func Exact(path string) PathMatcher  { return PathMatcher{Value: path} }
func Prefix(path string) PathMatcher { return PathMatcher{Value: path, Prefix: true} }

// Chrome decides whether the navigation bar is drawn.
type Chrome struct {
	matchers []PathMatcher
}

func NewChrome(matchers ...PathMatcher) *Chrome {
	return &Chrome{matchers: append([]PathMatcher(nil), matchers...)}
}

// DefaultChrome lists the in-app pages that carry the navigation bar.
func DefaultChrome() *Chrome {
	return NewChrome(
		Exact("/home"),
		Exact("/search"),
		Exact("/preferences"),
		Exact("/welcome"),
		Exact("/library"),
		Exact("/music"),
		Exact("/feed"),
		Exact("/community"),
		Exact("/profile"),
		Prefix("/movie/"),
		Prefix("/profile/"),
	)
}

// Eligible reports whether path is an in-app page.
func (c *Chrome) Eligible(path string) bool {
	for _, m := range c.matchers {
		if m.Matches(path) {
			return true
		}
	}
	return false
}

// ShouldShowNav is true only for eligible paths with a logged-in session.
func (c *Chrome) ShouldShowNav(path string, s session.Session) bool {
	return s.IsLoggedIn && c.Eligible(path)
}
