package logger

import (
	"fmt"

	"github.com/nexuslog/nexuslog/core"
	"github.com/nexuslog/nexuslog/sink"
)

// Logger is a cheap, immutable handle bound to a name, a minimum
// level, and a shared sink. Loggers writing to the same output path
// share one sink and therefore one file handle, but each carries its
// own name and level: filtering happens per logger, not per sink.
//
// A Logger may be created and discarded freely; the sink it points at
// lives in the Registry until shutdown.
type Logger struct {
	name  string
	level core.Level
	sink  *sink.Sink
}

func newLogger(name string, level core.Level, s *sink.Sink) *Logger {
	core.StartCoarseClock()
	return &Logger{name: name, level: level, sink: s}
}

// Name returns the logger's name; empty for an unnamed logger.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger's minimum level.
func (l *Logger) Level() core.Level {
	return l.level
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}
	l.log(level, msg)
}

// log enqueues a record; the level check already happened.
func (l *Logger) log(level core.Level, msg string) {
	if l.sink == nil {
		return
	}
	l.sink.Enqueue(core.Record{
		Time:    core.CoarseNow(),
		Level:   level,
		Name:    l.name,
		Message: msg,
	})
}

// Trace logs a trace message
func (l *Logger) Trace(msg string) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(core.TraceLevel, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(core.TraceLevel, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...))
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...))
}

// Stats returns a snapshot of the underlying sink's counters.
func (l *Logger) Stats() sink.Snapshot {
	if l.sink == nil {
		return sink.Snapshot{}
	}
	return l.sink.Stats()
}

// Shutdown drains and closes the logger's sink. It is idempotent.
// Other loggers bound to the same output path share the sink, so
// shutting one down stops them all; their subsequent records are
// discarded and counted in the sink's stats.
func (l *Logger) Shutdown() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}
