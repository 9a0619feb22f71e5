package formatter

import (
	"bytes"

	"github.com/nexuslog/nexuslog/core"
)

// Formatter renders a log record into a byte buffer.
type Formatter interface {
	// AppendRecord appends the rendered record, including the trailing
	// newline, to buf.
	AppendRecord(buf *bytes.Buffer, rec core.Record)
}
