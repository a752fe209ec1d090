package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/qosasa/qosasa/settings"
)

func loadSettings(t *testing.T, content string) *settings.Settings {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := settings.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestSettingsResolverResolve(t *testing.T) {
	s := loadSettings(t, `{
  "packagesDir": "/srv/snippets",
  "log_level": "debug",
  "log-format": "json",
  "logPretty": false,
  "count": 3,
  "tags": ["a", "b"]
}`)

	r := settingsResolver{settings: s}

	tests := []struct {
		flag string
		want any
	}{
		{"packages-dir", "/srv/snippets"},
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", false},
		{"count", "3"},
		{"tags", "a,b"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := r.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestSettingsResolverPrecedence(t *testing.T) {
	s := loadSettings(t, `{"logLevel": "warn", "log_level": "debug"}`)

	flag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}

	got, err := settingsResolver{settings: s}.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatal(err)
	}

	if got != "warn" {
		t.Errorf("Resolve() = %v, want the camel-case key to win", got)
	}
}

func TestSettingsResolverWithKong(t *testing.T) {
	s := loadSettings(t, `{"packagesDir": "/srv/snippets", "logLevel": "debug"}`)

	var cli struct {
		PackagesDir string `default:"/default"  name:"packages-dir"`
		LogLevel    string `default:"info"      name:"log-level"`
	}

	parser, err := kong.New(&cli, kong.Resolvers(settingsResolver{settings: s}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--log-level=warn"}); err != nil {
		t.Fatal(err)
	}

	if cli.PackagesDir != "/srv/snippets" {
		t.Errorf("PackagesDir = %q, want the settings value", cli.PackagesDir)
	}

	if cli.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want the command-line value", cli.LogLevel)
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{float64(2), "2"},
		{1.5, "1.5"},
		{"x", "x"},
		{true, true},
		{[]any{"a", float64(1)}, "a,1"},
		{[]any{}, ""},
	}

	for _, tt := range tests {
		if got := flagValue(tt.in); got != tt.want {
			t.Errorf("flagValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
