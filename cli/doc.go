// Package cli contains the command line interface for qosasa.
//
// # Usage
//
//	qosasa gen php.class 'User:Model:JsonSerializable:name.string,age.int --final'
//	qosasa parse php.class 'User::name.string'
//	qosasa show php.class --format=yaml
//	qosasa list
//	qosasa alias pc php.class
//	qosasa repl pc
//
// # Settings
//
// Flag defaults are read from the settings file ($QOSASA_SETTINGS, or
// settings.json in the configuration directory). Keys are flag names in
// camel case:
//
//	{
//	  "packagesDir": "~/.qosasa/packages",
//	  "aliases": {"pc": "php.class"},
//	  "logLevel": "debug"
//	}
//
// The init command writes the file from the current flag values. Packages
// listed in $QOSASA_PATH are searched before the packages directory.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// Logs go to stderr; command output goes to stdout.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profile kind (cpu, heap, trace, ...)
//   - --pprof-dir: output directory (default: <cache dir>/pprof)
package cli
