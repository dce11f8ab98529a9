package navigation

import "testing"

func TestParsePattern_Invalid(t *testing.T) {
	for _, raw := range []string{
		"home",
		"/movie/:id/reviews",
		"/:a/:b",
		"/movie/:",
		"/movie/:?",
		"/files/*",
	} {
		if _, err := ParsePattern(raw); err == nil {
			t.Errorf("ParsePattern(%q) should fail", raw)
		}
	}
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
		params  Params
	}{
		{"/", "/", true, Params{}},
		{"/", "/home", false, nil},
		{"/home", "/home", true, Params{}},
		{"/home", "/home/", true, Params{}},
		{"/home", "/Home", false, nil},
		{"/home", "/home/extra", false, nil},
		{"/movie/:id", "/movie/tt0111161", true, Params{"id": "tt0111161"}},
		{"/movie/:id", "/movie", false, nil},
		{"/movie/:id", "/movie/", false, nil},
		{"/movie/:id", "/movie/a/b", false, nil},
		{"/movie/:id", "/movies/tt1", false, nil},
		{"/profile/:username?", "/profile", true, Params{"username": ""}},
		{"/profile/:username?", "/profile/ripley", true, Params{"username": "ripley"}},
		{"/profile/:username?", "/profile/ripley/x", false, nil},
		{"*", "/anything/at/all", true, Params{}},
	}

	for _, tt := range tests {
		p := MustPattern(tt.pattern)
		params, ok := p.Match(tt.path)
		if ok != tt.want {
			t.Errorf("%s.Match(%q) = %v, want %v", tt.pattern, tt.path, ok, tt.want)
			continue
		}
		if !ok {
			continue
		}
		if len(params) != len(tt.params) {
			t.Errorf("%s.Match(%q) params = %v, want %v", tt.pattern, tt.path, params, tt.params)
			continue
		}
		for k, v := range tt.params {
			if params[k] != v {
				t.Errorf("%s.Match(%q) params[%s] = %q, want %q", tt.pattern, tt.path, k, params[k], v)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":        "/",
		"/":       "/",
		"///":     "/",
		"/home/":  "/home",
		"home":    "/home",
		"/movie/": "/movie",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewTable_Validation(t *testing.T) {
	home := Route{Pattern: MustPattern("/home"), View: ViewHome}
	all := Route{Pattern: MustPattern("*"), View: ViewNotFound}

	if _, err := NewTable(home, home); err == nil {
		t.Error("duplicate patterns should be rejected")
	}
	if _, err := NewTable(all, home); err == nil {
		t.Error("catch-all before other routes should be rejected")
	}
	if _, err := NewTable(Route{Pattern: MustPattern("/x")}); err == nil {
		t.Error("route without view should be rejected")
	}

	withDefault := Route{Pattern: MustPattern("/movie/:id"), View: ViewMovie, Default: currentUsername}
	if _, err := NewTable(withDefault); err == nil {
		t.Error("default on a required parameter should be rejected")
	}

	if _, err := NewTable(home, all); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	table, err := NewTable(
		Route{Pattern: MustPattern("/movie/new"), View: ViewSearch},
		Route{Pattern: MustPattern("/movie/:id"), View: ViewMovie},
	)
	if err != nil {
		t.Fatal(err)
	}

	r, _, ok := table.Match("/movie/new")
	if !ok || r.View != ViewSearch {
		t.Errorf("Match(/movie/new) = %v, want %v", r.View, ViewSearch)
	}
	r, params, _ := table.Match("/movie/tt1")
	if r.View != ViewMovie || params["id"] != "tt1" {
		t.Errorf("Match(/movie/tt1) = %v %v", r.View, params)
	}
	if _, _, ok := table.Match("/nope"); ok {
		t.Error("table without catch-all should not match unknown paths")
	}
}
