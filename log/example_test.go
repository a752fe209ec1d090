package log_test

import (
	"log/slog"
	"os"

	"github.com/qosasa/qosasa/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("snippet resolved", slog.String("name", "php.class"))
	logger.Debug("not shown at the default level")
	// Output: level=INFO msg="snippet resolved" name=php.class
}
