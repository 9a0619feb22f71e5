package core

import "time"

// Record is a single log event. It is constructed at the call site and
// sent by value through the sink's channel, so it is never shared or
// mutated after construction. Time is captured when the producer logs,
// not when the worker writes, so file order under queue backlog still
// reflects producer order.
type Record struct {
	Time    time.Time
	Level   Level
	Name    string // empty for an unnamed logger
	Message string
}
