package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// complete runs cobra's hidden completion command and returns the
// candidate lines and the trailing directive line.
func complete(t *testing.T, args ...string) ([]string, string) {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetArgs(append([]string{"__complete"}, args...))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("__complete %v: %v", args, err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	return lines[:len(lines)-1], lines[len(lines)-1]
}

func TestCompleteKitchenFlags(t *testing.T) {
	isolate(t)

	tests := []struct {
		name      string
		args      []string
		want      string
		directive string
	}{
		{"facade", []string{"plan", "--facade", ""}, "graphite\tGraphite (matte)", ":4"},
		{"countertop", []string{"price", "--countertop", ""}, "slate\tDark Slate", ":4"},
		{"carcass", []string{"render", "--carcass", ""}, "carc_light\tLight grey", ":4"},
		{"first module", []string{"plan", "-m", ""}, "sink80\tSink 80 cm", ":6"},
		{"next module", []string{"tui", "--modules", "base60,si"}, "base60,sink80\tSink 80 cm", ":6"},
		{"finish", []string{"plan", "--finish", ""}, "gloss", ":4"},
		{"format", []string{"render", "-f", "svg,"}, "svg,json", ":6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dir := complete(t, tt.args...)
			if !slices.Contains(got, tt.want) {
				t.Errorf("completions = %q, want %q", got, tt.want)
			}
			if dir != tt.directive {
				t.Errorf("directive = %q, want %q", dir, tt.directive)
			}
		})
	}
}

func TestCompleteModulesSkipsFiller(t *testing.T) {
	isolate(t)
	got, _ := complete(t, "plan", "-m", "")
	for _, line := range got {
		if strings.HasPrefix(line, "filler") {
			t.Errorf("filler template offered as a module: %q", line)
		}
	}
	if len(got) != 5 {
		t.Errorf("got %d module completions, want 5", len(got))
	}
}

func TestCompleteFromCatalogFlag(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "catalog.toml")
	src := `
[[facades]]
id = "teal"
label = "Teal"
value = "#1b6b73"
finish = "gloss"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _ := complete(t, "plan", "--catalog", path, "--facade", "")
	if !slices.Equal(got, []string{"teal\tTeal (gloss)"}) {
		t.Errorf("completions = %q, want only the file's facade", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in      string
		prefix  string
		entries []string
	}{
		{"", "", nil},
		{"base6", "", nil},
		{"base60,", "base60,", []string{"base60"}},
		{"base60, sink80,h", "base60, sink80,", []string{"base60", "sink80"}},
		{",,x", ",,", nil},
	}
	for _, tt := range tests {
		prefix, entries := splitList(tt.in)
		if prefix != tt.prefix || !slices.Equal(entries, tt.entries) {
			t.Errorf("splitList(%q) = %q, %q; want %q, %q", tt.in, prefix, entries, tt.prefix, tt.entries)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c := New(&bytes.Buffer{}, LogInfo)
			root := c.RootCommand()
			var out bytes.Buffer
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "kitchenrun") {
				t.Error("script should name the program")
			}
		})
	}
}
