package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/qosasa/qosasa/settings"
)

// initContext parses argv against a small CLI and returns a context
// carrying the kong context, with the settings file at path.
func initContext(t *testing.T, path string, argv ...string) context.Context {
	t.Helper()

	var cli struct {
		PackagesDir string `name:"packages-dir"`
		LogLevel    string `default:"info"      name:"log-level"`
		LogPretty   bool   `default:"true"      name:"log-pretty"`
		Hidden      string `hidden:""`
	}

	parser, err := kong.New(&cli, kong.Vars{SettingsIdentifier: path})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(argv)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("settings file is not JSON: %v\n%s", err, data)
	}

	return out
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_settings",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte(`{"aliases":{"c":"php.class"}}`), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "overwrite_corrupt_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.json")

			if tt.setup != nil {
				tt.setup(t, path)
			}

			ctx := initContext(t, path, "--packages-dir=/srv/snippets")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				if !errors.Is(err, settings.ErrWriteSettings) {
					t.Errorf("Init.Run() error = %v, want ErrWriteSettings", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() unexpected error = %v", err)
			}

			got := readJSON(t, path)

			if got["packagesDir"] != "/srv/snippets" {
				t.Errorf("packagesDir = %v, want /srv/snippets", got["packagesDir"])
			}

			if _, ok := got["aliases"].(map[string]any); !ok {
				t.Errorf("aliases = %#v, want an object", got["aliases"])
			}
		})
	}
}

func TestInitKeepsAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"aliases":{"c":"php.class"},"custom":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&Init{Force: true}).Run(initContext(t, path)); err != nil {
		t.Fatal(err)
	}

	got := readJSON(t, path)

	if diff := cmp.Diff(map[string]any{"c": "php.class"}, got["aliases"]); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}

	if got["custom"] != float64(1) {
		t.Errorf("custom = %v, want 1", got["custom"])
	}
}

func TestInitFlagValues(t *testing.T) {
	ctx := initContext(t, "unused", "--log-level=debug", "--hidden=x")

	got := (&Init{}).flagValues(ctx)

	want := map[string]any{
		"logLevel":  "debug",
		"logPretty": true,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flagValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	// A regular file where a directory is expected.
	parent := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	err := (&Init{}).Run(initContext(t, filepath.Join(parent, "settings.json")))
	if err == nil {
		t.Error("Init.Run() expected error for invalid path, got nil")
	}
}
