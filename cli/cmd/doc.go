// Package cmd implements the qosasa subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// SettingsIdentifier is the kong variable holding the settings file
	// path.
	SettingsIdentifier = "settings"
)
