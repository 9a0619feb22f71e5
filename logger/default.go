package logger

import (
	"sync"

	"github.com/nexuslog/nexuslog/core"
)

var (
	defaultRegistry = NewRegistry()

	rootMu     sync.Mutex
	rootLogger *Logger
)

// DefaultRegistry returns the process-wide registry backing the
// package-level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// BasicConfig configures the default registry and rebinds the root
// logger to the new defaults. See Registry.BasicConfig for the
// reconfiguration semantics.
func BasicConfig(path string, level core.Level, unixTS bool) error {
	if err := defaultRegistry.BasicConfig(path, level, unixTS); err != nil {
		return err
	}

	root, err := defaultRegistry.GetLogger("")
	if err != nil {
		return err
	}

	rootMu.Lock()
	rootLogger = root
	rootMu.Unlock()
	return nil
}

// GetLogger returns a logger on the default registry's output path at
// the default level.
func GetLogger(name string) (*Logger, error) {
	return defaultRegistry.GetLogger(name)
}

// GetLoggerLevel is GetLogger with an explicit minimum level.
func GetLoggerLevel(name string, level core.Level) (*Logger, error) {
	return defaultRegistry.GetLoggerLevel(name, level)
}

// New constructs a logger bound directly to path on the default
// registry.
func New(name, path string, level core.Level) (*Logger, error) {
	return defaultRegistry.New(name, path, level)
}

// Shutdown tears down every sink in the default registry, draining
// each, and resets the package to its pre-configuration state.
func Shutdown() error {
	rootMu.Lock()
	rootLogger = nil
	rootMu.Unlock()
	return defaultRegistry.Shutdown()
}

// root returns the root logger, creating an unnamed one lazily. If the
// configured destination cannot be opened, logging stays a no-op
// rather than failing the caller.
func root() *Logger {
	rootMu.Lock()
	defer rootMu.Unlock()

	if rootLogger == nil {
		l, err := defaultRegistry.GetLogger("")
		if err != nil {
			return &Logger{level: core.ErrorLevel + 1}
		}
		rootLogger = l
	}
	return rootLogger
}

// Package-level convenience functions using the root logger

// Trace logs a trace message using the root logger
func Trace(msg string) {
	root().Trace(msg)
}

// Debug logs a debug message using the root logger
func Debug(msg string) {
	root().Debug(msg)
}

// Info logs an info message using the root logger
func Info(msg string) {
	root().Info(msg)
}

// Warn logs a warning message using the root logger
func Warn(msg string) {
	root().Warn(msg)
}

// Error logs an error message using the root logger
func Error(msg string) {
	root().Error(msg)
}

// Tracef logs a formatted trace message using the root logger
func Tracef(format string, args ...interface{}) {
	root().Tracef(format, args...)
}

// Debugf logs a formatted debug message using the root logger
func Debugf(format string, args ...interface{}) {
	root().Debugf(format, args...)
}

// Infof logs a formatted info message using the root logger
func Infof(format string, args ...interface{}) {
	root().Infof(format, args...)
}

// Warnf logs a formatted warning message using the root logger
func Warnf(format string, args ...interface{}) {
	root().Warnf(format, args...)
}

// Errorf logs a formatted error message using the root logger
func Errorf(format string, args ...interface{}) {
	root().Errorf(format, args...)
}
