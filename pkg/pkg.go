//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of qosasa embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories and prefixes environment variables.
	Name = "qosasa"
	// Description is the one-line summary shown in help output.
	Description = "Snippet generator driven by compact argument schemas"
)

// EnvPrefix is the prefix of environment variables read by qosasa.
const EnvPrefix = "QOSASA_"

// Env returns the name of the qosasa environment variable with the given
// suffix, e.g. Env("PATH") == "QOSASA_PATH".
func Env(suffix string) string {
	return EnvPrefix + strings.ToUpper(suffix)
}
