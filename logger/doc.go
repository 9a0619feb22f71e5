// Package logger is the public API of nexuslog. Most users only need
// to import this package.
//
// A Logger is an immutable handle: a name, a minimum level, and a
// reference to the shared sink for its output path. Level checks
// happen before any allocation, so filtered-out messages cost only an
// integer comparison. Everything past the check is asynchronous — the
// record goes into the sink's bounded queue and a background worker
// does the formatting and file I/O, so Info, Error and friends never
// block on the disk.
//
// Configuration follows the familiar basicConfig/getLogger shape:
//
//	logger.BasicConfig("logs/app", logger.DebugLevel, false)
//	log, _ := logger.GetLogger("api")
//	log.Info("ready")
//	// ...
//	logger.Shutdown()
//
// Output goes to daily files named {path}_{YYYYMMDD}.log, rotated when
// the local calendar day changes, or to stdout when no path is
// configured. Loggers created against the same path share one sink
// and one file handle through the Registry; Shutdown drains every
// sink and closes the files.
//
// The package-level Info, Errorf, etc. delegate to an unnamed root
// logger bound to the configured defaults, so simple programs can log
// with no setup at all.
package logger
