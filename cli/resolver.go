package cli

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/qosasa/qosasa/cli/cmd"
	"github.com/qosasa/qosasa/settings"
)

// settingsResolver is a [kong.Resolver] supplying flag defaults from the
// settings file. Command-line flags override it.
//
// A flag is looked up under its camel-case name first, the form written by
// the init command, then verbatim and with underscores:
//
//	{
//	  "packagesDir": "~/snippets",
//	  "logLevel": "debug",
//	  "log_pretty": false
//	}
type settingsResolver struct {
	settings *settings.Settings
}

// Validate implements [kong.Resolver].
func (settingsResolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r settingsResolver) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range settingKeys(flag.Name) {
		if v, ok := r.settings.Get(key); ok {
			return flagValue(v), nil
		}
	}

	return nil, nil
}

// settingKeys returns the settings keys a flag may be stored under.
func settingKeys(flag string) []string {
	return []string{
		cmd.SettingKey(flag),
		flag,
		strings.ReplaceAll(flag, "-", "_"),
	}
}

// flagValue converts a decoded JSON value to a form kong can decode. Kong
// decodes numbers from strings.
func flagValue(v any) any {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := flagValue(e).(string); ok {
				out = append(out, s)
			}
		}

		return strings.Join(out, ",")
	default:
		return v
	}
}
