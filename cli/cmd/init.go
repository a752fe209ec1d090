package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/qosasa/qosasa/log"
	"github.com/qosasa/qosasa/profile"
	"github.com/qosasa/qosasa/settings"
)

// Init writes the settings file with the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing settings file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	path, ok := ktx.Model.Vars()[SettingsIdentifier]
	if !ok {
		panic("internal error: settings path undefined")
	}

	_, err = os.Stat(path)

	switch {
	case err == nil && !i.Force:
		return settings.ErrWriteSettings.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return settings.ErrWriteSettings.
			With(slog.String("file", path)).
			Wrap(err)
	}

	// Existing keys such as aliases survive an overwrite.
	s, err := settings.Load(path)
	if err != nil {
		log.WarnContext(ctx, "discarding unreadable settings", slog.Any("error", err))

		s = settings.New(path)
	}

	for key, val := range i.flagValues(ctx) {
		s.Set(key, val)
	}

	if err = s.Save(); err != nil {
		return err
	}

	log.DebugContext(ctx, "initialized settings file", slog.String("path", path))

	return nil
}

// flagValues returns the settings entries for every visible flag with a
// value, keyed by [SettingKey].
func (i *Init) flagValues(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	prefixIgnore := []string{"help", profile.Tag}
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := settingValue(ktx.FlagValue(flag)); v != nil {
			values[SettingKey(flag.Name)] = v
		}
	}

	return values
}

// settingValue converts a kong flag value to a JSON value, or nil if the
// flag is unset.
func settingValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return v.String()

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}

// SettingKey returns the settings key of a flag: "packages-dir" is stored
// as "packagesDir".
func SettingKey(flag string) string {
	var (
		b     strings.Builder
		upper bool
	)

	for _, r := range flag {
		switch {
		case r == '-' || r == '_':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))

			upper = false
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
