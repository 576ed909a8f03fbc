// Package log provides a structured logging interface based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options. The zero value [Logger] discards all messages,
// which lets library code log unconditionally without nil checks.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("mesh parsed", slog.Int("bindings", 4))
//	logger.Error("read failed", slog.String("path", path))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("source", name))
//	logger.Info("evaluating") // includes source=name
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant:
//
//	logger.InfoContext(ctx, "processing input")
//	logger.Info("message without context") // uses DefaultContextProvider
//
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. [LevelTrace] sits below
// [slog.LevelDebug] and is used for per-token and per-node diagnostics.
// Messages below the configured level are discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON], each with an optional colorized variant enabled by
// [WithPretty].
package log
