// Package sink implements the asynchronous write pipeline: a bounded
// multi-producer/single-consumer queue, one worker goroutine per sink,
// and a RotatingWriter that keeps daily log files.
//
// Producers call Enqueue, which never returns an error; what happens
// on a full queue is decided by the sink's single OverflowPolicy.
// Block (the default) applies backpressure and loses nothing, while
// the drop policies discard records and account for every one of them
// in atomic per-level counters, observable through Stats.
//
// The worker owns the writer exclusively. It drains the queue in
// small batches, rotates when a record's local calendar day changes,
// and flushes buffered output on an interval while the queue is idle.
// A write failure on one record is reported to a fallback stream
// (stderr by default) and does not stop the worker or lose subsequent
// records.
//
// Close performs a graceful drain bounded by DrainTimeout, flushes and
// closes the file, and is idempotent.
package sink
