// Package core defines the shared types used across the nexuslog engine.
//
// It provides the Level type for severity filtering and the Record type
// that represents a single log event. Records are plain values: a
// producer constructs one, hands it to a sink's channel, and never
// touches it again. The single worker on the other end of the channel
// is the only consumer, so no locking or pooling is needed to keep
// records immutable.
//
// The coarse clock caches time.Now() in a background goroutine so that
// hot logging paths can stamp records with a single atomic pointer
// load instead of a full clock read. Its 500µs resolution is fine for
// log timestamps; ordering within a sink comes from channel FIFO, not
// from timestamp comparison.
package core
