package sink

import (
	"sync/atomic"

	"github.com/nexuslog/nexuslog/core"
)

// OverflowPolicy defines how Enqueue behaves when the queue is full.
// Each sink carries exactly one policy, fixed at construction.
type OverflowPolicy int

const (
	// Block waits until queue space is available. No record is lost;
	// producers absorb the backpressure.
	Block OverflowPolicy = iota
	// DropNewest discards the incoming record when the queue is full
	DropNewest
	// DropOldest evicts the oldest queued record to make room
	DropOldest
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "Block"
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	default:
		return "Unknown"
	}
}

// Stats tracks sink statistics
type Stats struct {
	// Separate atomic counters per level
	DroppedTrace uint64
	DroppedDebug uint64
	DroppedInfo  uint64
	DroppedWarn  uint64
	DroppedError uint64
	// BlockedTotal counts times a producer blocked on a full queue
	BlockedTotal uint64
	// ProcessedTotal counts records written by the worker
	ProcessedTotal uint64
	// DiscardedTotal counts records discarded because the sink was
	// already shut down, or abandoned by a drain timeout
	DiscardedTotal uint64
	// WriteErrorsTotal counts records whose write failed
	WriteErrorsTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	switch level {
	case core.TraceLevel:
		atomic.AddUint64(&s.DroppedTrace, 1)
	case core.DebugLevel:
		atomic.AddUint64(&s.DroppedDebug, 1)
	case core.InfoLevel:
		atomic.AddUint64(&s.DroppedInfo, 1)
	case core.WarnLevel:
		atomic.AddUint64(&s.DroppedWarn, 1)
	case core.ErrorLevel:
		atomic.AddUint64(&s.DroppedError, 1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementDiscarded atomically increments the discarded counter
func (s *Stats) IncrementDiscarded() {
	atomic.AddUint64(&s.DiscardedTotal, 1)
}

// IncrementWriteErrors atomically increments the write-error counter
func (s *Stats) IncrementWriteErrors() {
	atomic.AddUint64(&s.WriteErrorsTotal, 1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	switch level {
	case core.TraceLevel:
		return atomic.LoadUint64(&s.DroppedTrace)
	case core.DebugLevel:
		return atomic.LoadUint64(&s.DroppedDebug)
	case core.InfoLevel:
		return atomic.LoadUint64(&s.DroppedInfo)
	case core.WarnLevel:
		return atomic.LoadUint64(&s.DroppedWarn)
	case core.ErrorLevel:
		return atomic.LoadUint64(&s.DroppedError)
	default:
		return 0
	}
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	return atomic.LoadUint64(&s.DroppedTrace) +
		atomic.LoadUint64(&s.DroppedDebug) +
		atomic.LoadUint64(&s.DroppedInfo) +
		atomic.LoadUint64(&s.DroppedWarn) +
		atomic.LoadUint64(&s.DroppedError)
}

// Snapshot is a point-in-time copy of a sink's counters
type Snapshot struct {
	Dropped     map[core.Level]uint64
	Blocked     uint64
	Processed   uint64
	Discarded   uint64
	WriteErrors uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Dropped: map[core.Level]uint64{
			core.TraceLevel: s.GetDropped(core.TraceLevel),
			core.DebugLevel: s.GetDropped(core.DebugLevel),
			core.InfoLevel:  s.GetDropped(core.InfoLevel),
			core.WarnLevel:  s.GetDropped(core.WarnLevel),
			core.ErrorLevel: s.GetDropped(core.ErrorLevel),
		},
		Blocked:     atomic.LoadUint64(&s.BlockedTotal),
		Processed:   atomic.LoadUint64(&s.ProcessedTotal),
		Discarded:   atomic.LoadUint64(&s.DiscardedTotal),
		WriteErrors: atomic.LoadUint64(&s.WriteErrorsTotal),
	}
}
