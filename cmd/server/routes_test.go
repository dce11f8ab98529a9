package main

import (
	"bytes"
	"strings"
	"testing"

	"tunr-web/internal/navigation"
)

func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer
	if err := printRoutes(&buf, navigation.DefaultTable()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(navigation.DefaultTable().Routes())+1 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "PATTERN") {
		t.Errorf("header = %q", lines[0])
	}
	if f := strings.Fields(lines[len(lines)-1]); f[0] != "*" || f[1] != "notfound" || f[2] != "public" {
		t.Errorf("last route = %v, want catch-all", f)
	}

	var library []string
	for _, l := range lines {
		if f := strings.Fields(l); f[0] == "/library" {
			library = f
		}
	}
	if len(library) != 3 || library[2] != "protected" {
		t.Errorf("/library row = %v", library)
	}
}

func TestRootHasCommands(t *testing.T) {
	for _, name := range []string{"serve", "routes"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
