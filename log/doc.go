// Package log provides a small structured logging layer over [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options
// that take effect when the logger is built:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Attributes are always [slog.Attr] values:
//
//	logger.Info("snippet resolved", slog.String("name", "php.class"))
//
// # Default logger
//
// The package keeps a process-wide default logger that the package-level
// functions ([Info], [DebugContext], ...) write to. [Config] rebuilds it with
// additional options and is safe to call concurrently with logging.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's Debug and is used for
// per-token parser diagnostics.
//
// # Formats
//
// [FormatText] and [FormatJSON]. When pretty printing is enabled the text
// format is colorized with lipgloss styles; JSON output is never colorized.
package log
