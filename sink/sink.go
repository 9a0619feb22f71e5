package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nexuslog/nexuslog/core"
	"github.com/nexuslog/nexuslog/formatter"
)

// Config holds configuration for a sink
type Config struct {
	// PathPrefix is the output destination. Empty selects the console.
	PathPrefix string
	// UnixTS selects unix-epoch timestamp rendering
	UnixTS bool
	// BufferSize is the queue capacity (default: 65536)
	BufferSize int
	// Policy is the overflow policy (default: Block)
	Policy OverflowPolicy
	// BatchSize bounds the worker's opportunistic drain between
	// channel waits (default: 32)
	BatchSize int
	// FlushInterval is how often buffered output is flushed while the
	// queue is idle (default: 1s)
	FlushInterval time.Duration
	// DrainTimeout bounds the drain performed by Close (default: 5s)
	DrainTimeout time.Duration
	// ConsoleWriter overrides os.Stdout in console mode
	ConsoleWriter io.Writer
	// Fallback receives internal error reports (default: os.Stderr)
	Fallback io.Writer
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 65536
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if cfg.Fallback == nil {
		cfg.Fallback = os.Stderr
	}
}

// Sink pairs a bounded record queue with the single worker goroutine
// that drains it into a RotatingWriter. The worker is the only
// goroutine that touches the writer, so writes and rotation need no
// locking. Records from concurrent producers are delivered FIFO: one
// bounded channel, one consumer.
type Sink struct {
	queue         chan core.Record
	writer        *RotatingWriter
	policy        OverflowPolicy
	stats         *Stats
	fallback      io.Writer
	batchSize     int
	flushInterval time.Duration
	drainTimeout  time.Duration

	closed    chan struct{}
	wg        sync.WaitGroup
	shutdown  atomic.Bool
	closeOnce sync.Once
	closeErr  error
	workerErr error // written by the worker before wg.Done, read after wg.Wait
}

// New creates a sink and starts its worker. Opening the initial output
// file happens synchronously here, so configuration errors surface to
// the caller instead of the worker.
func New(cfg Config) (*Sink, error) {
	applyDefaults(&cfg)

	w, err := NewRotatingWriter(cfg.PathPrefix, formatter.NewTextFormatter(cfg.UnixTS), cfg.ConsoleWriter)
	if err != nil {
		return nil, err
	}

	s := &Sink{
		queue:         make(chan core.Record, cfg.BufferSize),
		writer:        w,
		policy:        cfg.Policy,
		stats:         NewStats(),
		fallback:      cfg.Fallback,
		batchSize:     cfg.BatchSize,
		flushInterval: cfg.FlushInterval,
		drainTimeout:  cfg.DrainTimeout,
		closed:        make(chan struct{}),
	}

	s.wg.Add(1)
	go s.process()

	return s, nil
}

// Enqueue hands a record to the sink. It never reports an error to the
// producer: a full queue is handled by the sink's OverflowPolicy, and
// a record enqueued after Close is discarded and counted in
// Stats.Discarded.
func (s *Sink) Enqueue(rec core.Record) {
	if s.shutdown.Load() {
		s.stats.IncrementDiscarded()
		return
	}

	switch s.policy {
	case DropNewest:
		select {
		case s.queue <- rec:
			s.settleShutdownRace()
		default:
			s.stats.IncrementDropped(rec.Level)
		}

	case DropOldest:
		select {
		case s.queue <- rec:
			s.settleShutdownRace()
		default:
			// Queue full - evict the oldest entry. The worker may win
			// the race, in which case the retry below usually succeeds
			// anyway.
			select {
			case old := <-s.queue:
				s.stats.IncrementDropped(old.Level)
			default:
			}
			select {
			case s.queue <- rec:
				s.settleShutdownRace()
			default:
				// Still full, drop this one
				s.stats.IncrementDropped(rec.Level)
			}
		}

	case Block:
		fallthrough
	default:
		select {
		case s.queue <- rec:
			s.settleShutdownRace()
		default:
			s.stats.IncrementBlocked()
			select {
			case s.queue <- rec:
				s.settleShutdownRace()
			case <-s.closed:
				s.stats.IncrementDiscarded()
			}
		}
	}
}

// settleShutdownRace covers a producer that passed the shutdown check,
// lost the CPU, and completed its buffered send after the worker
// drained the queue and exited. That record would sit in the abandoned
// channel with no counter observing it. When the race is detected the
// producer pulls one record back out and counts it as discarded. If
// the worker is still draining it may consume the record first and
// write it normally; the empty non-blocking receive then does nothing.
func (s *Sink) settleShutdownRace() {
	if !s.shutdown.Load() {
		return
	}
	select {
	case <-s.queue:
		s.stats.IncrementDiscarded()
	default:
	}
}

// Closed reports whether Close has been called.
func (s *Sink) Closed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// Stats returns a snapshot of the sink's counters.
func (s *Sink) Stats() Snapshot {
	return s.stats.GetSnapshot()
}

// process is the worker loop: dequeue, write, opportunistically drain
// a batch, flush periodically while idle.
func (s *Sink) process() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case rec := <-s.queue:
			s.write(rec)
			// Batch drain: process additional queued entries without blocking
		batchDrain:
			for n := 1; n < s.batchSize; n++ {
				select {
				case rec := <-s.queue:
					s.write(rec)
				default:
					break batchDrain
				}
			}

		case <-ticker.C:
			if err := s.writer.Flush(); err != nil {
				s.reportError(err)
				s.writer.Recover()
			}

		case <-s.closed:
			s.workerErr = s.drain()
			return
		}
	}
}

// write hands one record to the writer. A failed write is reported to
// the fallback stream and counted; the worker keeps processing.
func (s *Sink) write(rec core.Record) {
	if err := s.writer.WriteRecord(rec); err != nil {
		s.stats.IncrementWriteErrors()
		s.reportError(err)
		s.writer.Recover()
		return
	}
	s.stats.IncrementProcessed()
}

// drain empties the queue, bounded by the drain timeout, then flushes
// and closes the writer. Records still queued when the deadline fires
// are discarded and counted.
func (s *Sink) drain() error {
	deadline := time.NewTimer(s.drainTimeout)
	defer deadline.Stop()

	var abandoned uint64
drainLoop:
	for {
		select {
		case rec := <-s.queue:
			s.write(rec)
		case <-deadline.C:
			// Timeout reached, discard whatever is left
			for {
				select {
				case <-s.queue:
					abandoned++
					s.stats.IncrementDiscarded()
				default:
					break drainLoop
				}
			}
		default:
			// Queue empty
			break drainLoop
		}
	}

	closeErr := s.writer.Close()
	if abandoned > 0 {
		return fmt.Errorf("drain timed out after %v: %d records discarded", s.drainTimeout, abandoned)
	}
	if closeErr != nil {
		return fmt.Errorf("close writer: %w", closeErr)
	}
	return nil
}

// reportError writes an internal failure to the fallback stream.
// Logging must never destabilize the host application, so errors stop
// here.
func (s *Sink) reportError(err error) {
	fmt.Fprintf(s.fallback, "nexuslog: %v\n", err)
}

// Close stops the sink: no further records are accepted, the queue is
// drained (bounded by DrainTimeout), and the writer is flushed and
// closed. A drain timeout is returned as an error but leaves the sink
// in a consistent state. Close is idempotent and safe to call from
// multiple goroutines; later calls return the first call's result.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.shutdown.Store(true)
		close(s.closed)
		s.wg.Wait()
		s.closeErr = s.workerErr
	})
	return s.closeErr
}
