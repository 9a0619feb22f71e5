// Package formatter renders log records to bytes.
//
// The engine writes plain-text lines with one of two timestamp
// representations: fixed-point unix seconds, or a local date-time
// string. The display mode only changes how the timestamp is rendered;
// daily file rotation always uses the local calendar day regardless of
// the mode selected here.
//
// Formatters append into a caller-provided bytes.Buffer. The sink
// worker owns a single reusable buffer, so formatting a record does
// not allocate once the buffer has grown to a steady size.
package formatter
