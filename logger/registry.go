package logger

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"

	"github.com/nexuslog/nexuslog/core"
	"github.com/nexuslog/nexuslog/sink"
)

// Registry owns the process-wide mapping from output-path identity to
// the shared sink for that path, plus the defaults established by
// BasicConfig. Sinks are created lazily on first use of a path and
// live until Shutdown; the empty path identifies the console.
//
// The map is the only state shared across goroutines outside the
// per-sink channels, guarded by a mutex that is held only for the
// insert-if-absent on first use of a path.
type Registry struct {
	mu            sync.Mutex
	sinks         map[string]*sink.Sink
	consoleWriter io.Writer
	defaultPath   string
	defaultLevel  core.Level
	defaultUnixTS bool
}

// NewRegistry creates an empty registry with console output and
// InfoLevel as defaults.
func NewRegistry() *Registry {
	return &Registry{
		sinks:        make(map[string]*sink.Sink),
		defaultLevel: core.InfoLevel,
	}
}

// SetConsoleWriter redirects console sinks created after this call.
// By default the console sink writes to os.Stdout.
func (r *Registry) SetConsoleWriter(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consoleWriter = w
}

// BasicConfig establishes the default output path, minimum level and
// timestamp display mode, and opens the sink for that path so an
// unwritable path fails here rather than in a background worker.
//
// Reconfiguring with a different path leaves sinks for previously
// configured paths running: loggers already bound to them keep
// writing to the old destination until Shutdown. Reconfiguring with
// the same path reuses the existing sink, including its original
// timestamp mode.
func (r *Registry) BasicConfig(path string, level core.Level, unixTS bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defaultPath = path
	r.defaultLevel = level
	r.defaultUnixTS = unixTS

	_, err := r.sinkLocked(path)
	return err
}

// sinkLocked returns the shared sink for path, creating it when absent
// or previously closed. Caller holds r.mu.
func (r *Registry) sinkLocked(path string) (*sink.Sink, error) {
	if s, ok := r.sinks[path]; ok && !s.Closed() {
		return s, nil
	}

	s, err := sink.New(sink.Config{
		PathPrefix:    path,
		UnixTS:        r.defaultUnixTS,
		ConsoleWriter: r.consoleWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("sink for %s: %w", pathIdentity(path), err)
	}
	r.sinks[path] = s
	return s, nil
}

// GetLogger returns a logger bound to the default path's shared sink,
// filtering at the default level.
func (r *Registry) GetLogger(name string) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newLoggerLocked(name, r.defaultPath, r.defaultLevel)
}

// GetLoggerLevel is GetLogger with an explicit minimum level.
func (r *Registry) GetLoggerLevel(name string, level core.Level) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newLoggerLocked(name, r.defaultPath, level)
}

// New constructs a logger bound directly to path, sharing the sink
// with every other logger on the same path.
func (r *Registry) New(name, path string, level core.Level) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newLoggerLocked(name, path, level)
}

func (r *Registry) newLoggerLocked(name, path string, level core.Level) (*Logger, error) {
	s, err := r.sinkLocked(path)
	if err != nil {
		return nil, err
	}
	return newLogger(name, level, s), nil
}

// Shutdown drains and closes every sink and returns the registry to
// its unconfigured state. Errors from individual sinks are combined;
// a drain timeout on one sink does not prevent the others from being
// drained.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for path, s := range r.sinks {
		if cerr := s.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("sink for %s: %w", pathIdentity(path), cerr))
		}
	}

	r.sinks = make(map[string]*sink.Sink)
	r.defaultPath = ""
	r.defaultLevel = core.InfoLevel
	r.defaultUnixTS = false
	return err
}

// pathIdentity names a path key in errors; the console's empty key
// reads as "stdout".
func pathIdentity(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
