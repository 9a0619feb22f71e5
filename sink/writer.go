package sink

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nexuslog/nexuslog/core"
	"github.com/nexuslog/nexuslog/formatter"
)

// dateLayout encodes the calendar day embedded in file names.
const dateLayout = "20060102"

// writerBufferSize is the bufio capacity in front of the file
const writerBufferSize = 1 << 20

// RotatingWriter owns exactly one output destination and keeps the
// invariant that the open file is named after the current calendar
// day. With an empty path prefix it writes to a console stream and
// never rotates.
//
// After construction only the sink's worker goroutine touches a
// RotatingWriter, so it carries no locking.
type RotatingWriter struct {
	prefix    string // empty means console mode
	console   io.Writer
	formatter formatter.Formatter
	file      *os.File
	buf       *bufio.Writer
	date      string // YYYYMMDD of the currently open file
	name      string // path of the currently open file
	written   int64  // bytes written to the current file by this writer
	lineBuf   bytes.Buffer
}

// NewRotatingWriter opens the destination for pathPrefix. In file mode
// the file for today's local date is opened immediately, so an
// unwritable path surfaces here rather than in the worker. console
// overrides os.Stdout in console mode and is ignored otherwise.
func NewRotatingWriter(pathPrefix string, f formatter.Formatter, console io.Writer) (*RotatingWriter, error) {
	w := &RotatingWriter{
		prefix:    pathPrefix,
		console:   console,
		formatter: f,
	}

	if pathPrefix == "" {
		if w.console == nil {
			w.console = os.Stdout
		}
		w.buf = bufio.NewWriterSize(w.console, writerBufferSize)
		return w, nil
	}

	if err := w.open(time.Now().Format(dateLayout)); err != nil {
		return nil, err
	}
	return w, nil
}

// Filename returns the dated file name for the given local date. A
// prefix that already carries an extension keeps it ("logs/app.log"
// becomes "logs/app_20260229.log"), otherwise ".log" is appended.
func (w *RotatingWriter) Filename(date string) string {
	ext := filepath.Ext(w.prefix)
	if ext != "" && filepath.Base(w.prefix) != ext {
		return strings.TrimSuffix(w.prefix, ext) + "_" + date + ext
	}
	return w.prefix + "_" + date + ".log"
}

// open opens (creating if needed) the file for date in append mode and
// points the buffered writer at it.
func (w *RotatingWriter) open(date string) error {
	name := w.Filename(date)
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	w.file = file
	if w.buf == nil {
		w.buf = bufio.NewWriterSize(file, writerBufferSize)
	} else {
		w.buf.Reset(file)
	}
	w.date = date
	w.name = name
	w.written = 0
	return nil
}

// WriteRecord formats and writes one record, rotating first when the
// record's local calendar day differs from the open file's day.
// Rotation compares date strings, never raw timestamps, so a clock
// stepping backward within the same day cannot trigger a rotation.
func (w *RotatingWriter) WriteRecord(rec core.Record) error {
	if w.prefix != "" {
		if date := rec.Time.Format(dateLayout); date != w.date {
			if err := w.rotate(date); err != nil {
				return err
			}
		}
	}

	w.lineBuf.Reset()
	w.formatter.AppendRecord(&w.lineBuf, rec)
	n, err := w.buf.Write(w.lineBuf.Bytes())
	w.written += int64(n)
	return err
}

// rotate flushes and closes the current file, then opens the file for
// the new date. A file this writer opened but never wrote to is
// removed, so rotating away from it does not leave an empty dated
// file behind.
//
// w.file is cleared as soon as the old file is closed: if opening the
// new file fails, the next WriteRecord re-enters rotate and retries
// the open directly instead of tripping over the closed handle.
func (w *RotatingWriter) rotate(date string) error {
	if w.file != nil {
		if err := w.buf.Flush(); err != nil {
			return fmt.Errorf("flush before rotation: %w", err)
		}
		closeErr := w.file.Close()
		w.file = nil
		if closeErr != nil {
			return fmt.Errorf("close before rotation: %w", closeErr)
		}
		if w.written == 0 {
			if info, err := os.Stat(w.name); err == nil && info.Size() == 0 {
				os.Remove(w.name)
			}
		}
	}
	return w.open(date)
}

// Flush flushes buffered output to the destination.
func (w *RotatingWriter) Flush() error {
	return w.buf.Flush()
}

// Recover resets the buffered writer after a failed write or flush.
// bufio latches the first error and refuses all further writes, so
// without a reset one bad write (disk full, for instance) would lose
// every subsequent record. Bytes buffered at failure time are
// discarded; the failure has already been reported.
//
// Between a failed rotation open and the successful retry there is no
// open file; the buffer parks on io.Discard until open resets it.
func (w *RotatingWriter) Recover() {
	switch {
	case w.file != nil:
		w.buf.Reset(w.file)
	case w.console != nil:
		w.buf.Reset(w.console)
	default:
		w.buf.Reset(io.Discard)
	}
}

// Close flushes and, in file mode, syncs and closes the file. The
// console stream is not closed; the writer does not own it.
func (w *RotatingWriter) Close() error {
	flushErr := w.buf.Flush()

	if w.file != nil {
		if err := w.file.Sync(); err != nil && flushErr == nil {
			flushErr = err
		}
		if err := w.file.Close(); err != nil && flushErr == nil {
			flushErr = err
		}
		w.file = nil
	}

	return flushErr
}
