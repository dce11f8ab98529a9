package navigation

import (
	"errors"
	"fmt"
	"strings"
)

// Params holds positional parameters extracted from a path.
type Params map[string]string

// Pattern is a parsed route pattern such as "/movie/:id",
// "/profile/:username?" or the catch-all "*".
type Pattern struct {
	raw      string
	literals []string // leading literal segments
	param    string   // trailing parameter name, "" if none
	optional bool
	catchAll bool
}

var errBadPattern = errors.New("navigation: invalid pattern")

// ParsePattern parses a route pattern. Only the last segment may be a
// parameter and at most one parameter is allowed.
func ParsePattern(raw string) (Pattern, error) {
	if raw == "*" {
		return Pattern{raw: raw, catchAll: true}, nil
	}
	if !strings.HasPrefix(raw, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with /", errBadPattern, raw)
	}

	p := Pattern{raw: raw}
	segments := splitPath(raw)

	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			if p.param != "" {
				return Pattern{}, fmt.Errorf("%w: %q has segments after its parameter", errBadPattern, raw)
			}
			if strings.ContainsAny(seg, "*?") {
				return Pattern{}, fmt.Errorf("%w: %q has a wildcard segment", errBadPattern, raw)
			}
			p.literals = append(p.literals, seg)
			continue
		}

		if i != len(segments)-1 {
			return Pattern{}, fmt.Errorf("%w: %q parameter must be the last segment", errBadPattern, raw)
		}

		name := strings.TrimPrefix(seg, ":")
		if strings.HasSuffix(name, "?") {
			p.optional = true
			name = strings.TrimSuffix(name, "?")
		}
		if name == "" {
			return Pattern{}, fmt.Errorf("%w: %q has an unnamed parameter", errBadPattern, raw)
		}
		p.param = name
	}

	return p, nil
}

// MustPattern is ParsePattern for static tables.
func MustPattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string { return p.raw }

// Param returns the parameter name and whether it is optional.
func (p Pattern) Param() (name string, optional bool) {
	return p.param, p.optional
}

// Match reports whether path matches, returning the extracted parameter.
// Literal segments compare case-sensitively.
func (p Pattern) Match(path string) (Params, bool) {
	if p.catchAll {
		return Params{}, true
	}

	segments := splitPath(path)
	n := len(p.literals)

	switch {
	case p.param == "":
		if len(segments) != n {
			return nil, false
		}
	case p.optional:
		if len(segments) != n && len(segments) != n+1 {
			return nil, false
		}
	default:
		if len(segments) != n+1 {
			return nil, false
		}
	}

	for i, lit := range p.literals {
		if segments[i] != lit {
			return nil, false
		}
	}

	params := Params{}
	if p.param != "" {
		params[p.param] = ""
		if len(segments) == n+1 {
			params[p.param] = segments[n]
		}
	}

	return params, true
}

// splitPath splits "/a/b/" into ["a", "b"]; "/" yields no segments.
// Empty interior segments ("/a//b") are kept so they never match.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Normalize trims trailing slashes; the empty path becomes "/".
func Normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
