package formatter

import (
	"bytes"
	"strconv"

	"github.com/nexuslog/nexuslog/core"
)

// localTimeLayout renders a record's timestamp as a human-readable
// local date-time with microsecond precision and UTC offset.
const localTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// TextFormatter renders records as single plain-text lines:
//
//	<timestamp> <LEVEL> [<name>] <message>
//
// The [<name>] segment, brackets included, is omitted entirely when
// the record carries no logger name.
type TextFormatter struct {
	// UnixTS selects fixed-point seconds-since-epoch timestamps
	// instead of local date-time.
	UnixTS bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(unixTS bool) *TextFormatter {
	return &TextFormatter{UnixTS: unixTS}
}

// AppendRecord appends the rendered record to buf.
func (f *TextFormatter) AppendRecord(buf *bytes.Buffer, rec core.Record) {
	if f.UnixTS {
		appendUnixTimestamp(buf, rec)
	} else {
		// AppendFormat into the buffer's spare capacity avoids a
		// string allocation per record
		buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), localTimeLayout))
	}

	buf.WriteByte(' ')
	buf.WriteString(rec.Level.String())

	if rec.Name != "" {
		buf.WriteString(" [")
		buf.WriteString(rec.Name)
		buf.WriteByte(']')
	}

	buf.WriteByte(' ')
	buf.WriteString(rec.Message)
	buf.WriteByte('\n')
}

// appendUnixTimestamp renders <secs>.<nanos> with the nanosecond part
// zero-padded to nine digits so the field is fixed-point.
func appendUnixTimestamp(buf *bytes.Buffer, rec core.Record) {
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), rec.Time.Unix(), 10))
	buf.WriteByte('.')

	var digits [9]byte
	nanos := rec.Time.Nanosecond()
	for i := 8; i >= 0; i-- {
		digits[i] = byte('0' + nanos%10)
		nanos /= 10
	}
	buf.Write(digits[:])
}
