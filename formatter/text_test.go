package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nexuslog/nexuslog/core"
)

func format(f *TextFormatter, rec core.Record) string {
	var buf bytes.Buffer
	f.AppendRecord(&buf, rec)
	return buf.String()
}

func TestTextFormatter_LocalTime(t *testing.T) {
	f := NewTextFormatter(false)

	rec := core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.Local),
		Level:   core.InfoLevel,
		Name:    "api",
		Message: "test message",
	}

	line := format(f, rec)
	if !strings.HasPrefix(line, "2026-02-18T13:00:00.000000") {
		t.Errorf("expected local date-time prefix, got: %s", line)
	}
	if !strings.Contains(line, " INFO [api] test message") {
		t.Errorf("expected ' INFO [api] test message' in output, got: %s", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("expected trailing newline, got: %q", line)
	}
}

func TestTextFormatter_UnixTS(t *testing.T) {
	f := NewTextFormatter(true)

	rec := core.Record{
		Time:    time.Unix(1700000000, 42),
		Level:   core.ErrorLevel,
		Name:    "worker",
		Message: "disk on fire",
	}

	line := format(f, rec)
	want := "1700000000.000000042 ERROR [worker] disk on fire\n"
	if line != want {
		t.Errorf("got %q, want %q", line, want)
	}
}

func TestTextFormatter_NameOmitted(t *testing.T) {
	f := NewTextFormatter(true)

	rec := core.Record{
		Time:    time.Unix(1700000000, 0),
		Level:   core.WarnLevel,
		Message: "unnamed",
	}

	line := format(f, rec)
	want := "1700000000.000000000 WARN unnamed\n"
	if line != want {
		t.Errorf("got %q, want %q", line, want)
	}
	if strings.Contains(line, "[") || strings.Contains(line, "]") {
		t.Errorf("empty name must not render brackets: %q", line)
	}
}

func TestTextFormatter_LineShape(t *testing.T) {
	// <timestamp> <LEVEL> [<name>] <message>
	shape := regexp.MustCompile(`^\d+\.\d{9} (TRACE|DEBUG|INFO|WARN|ERROR)( \[[^\]]+\])? .*\n$`)
	f := NewTextFormatter(true)

	for _, rec := range []core.Record{
		{Time: time.Now(), Level: core.TraceLevel, Name: "a", Message: "x"},
		{Time: time.Now(), Level: core.DebugLevel, Message: "y z"},
		{Time: time.Now(), Level: core.ErrorLevel, Name: "b.c", Message: ""},
	} {
		line := format(f, rec)
		if !shape.MatchString(line) {
			t.Errorf("line does not match expected shape: %q", line)
		}
	}
}

func TestTextFormatter_BufferReuse(t *testing.T) {
	f := NewTextFormatter(false)
	var buf bytes.Buffer

	rec := core.Record{Time: time.Now(), Level: core.InfoLevel, Message: "m"}
	f.AppendRecord(&buf, rec)
	first := buf.Len()
	f.AppendRecord(&buf, rec)

	if buf.Len() != 2*first {
		t.Errorf("appending twice should double the buffer, got %d after %d", buf.Len(), first)
	}
}
