// Package logging provides structured logging for windrose.
//
// It wraps Go's log/slog with a JSON handler and persistent attributes so
// that every entry written while rendering or serving a chart carries the
// component, height layer or compass direction it concerns.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("dataset generated", "seed", 42)
//
// # Context Propagation
//
//	tuiLogger := logger.WithComponent("tui")
//	tuiLogger.WithLayer("925mb").Debug("layer toggled", "visible", false)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"layer toggled","component":"tui","layer":"925mb","visible":false}
//
// # Terminal UI
//
// The interactive view owns the terminal, so it must never log to stderr.
// When file logging is disabled the commands fall back to [NopLogger].
package logging
