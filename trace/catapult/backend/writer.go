// Package backend implements the reference collector backend: it
// serializes emissions onto a single writer goroutine through a
// blocking queue and produces a well-formed Catapult/Chrome-Trace JSON
// document.
package backend

import (
	"bufio"
	"io"
	"strconv"

	"spantrace/trace/catapult"
)

// jsonWriter is a stateful, append-only Catapult document writer over
// an output sink. It writes '[' on creation and ']' on Close, and never
// reads back or rewrites already-emitted bytes.
//
// This is a hand-rolled serializer rather than encoding/json.Encoder
// because the wire contract fixes field order and an exact escape
// table that encoding/json does not guarantee to reproduce byte for
// byte (see DESIGN.md).
type jsonWriter struct {
	w          *bufio.Writer
	closer     io.Closer // non-nil if the writer opened the underlying file
	wroteFirst bool
}

func newJSONWriter(w io.Writer, closer io.Closer) (*jsonWriter, error) {
	jw := &jsonWriter{w: bufio.NewWriter(w), closer: closer}
	if _, err := jw.w.WriteString("["); err != nil {
		return nil, err
	}
	return jw, nil
}

// writeEvent appends one serialized event object, preceded by a ",\n"
// separator for every event but the first.
func (jw *jsonWriter) writeEvent(raw []byte) error {
	if jw.wroteFirst {
		if _, err := jw.w.WriteString(",\n"); err != nil {
			return err
		}
	} else {
		jw.wroteFirst = true
	}
	_, err := jw.w.Write(raw)
	return err
}

// flush pushes buffered bytes to the underlying sink without closing
// it, used on every tick event.
func (jw *jsonWriter) flush() error {
	return jw.w.Flush()
}

// close writes the closing bracket, flushes, and closes the underlying
// file if the writer opened it.
func (jw *jsonWriter) close() error {
	if _, err := jw.w.WriteString("]"); err != nil {
		return err
	}
	if err := jw.w.Flush(); err != nil {
		return err
	}
	if jw.closer != nil {
		return jw.closer.Close()
	}
	return nil
}

// microsField renders a microsecond timestamp/duration as a decimal
// with exactly two fractional digits.
func microsField(buf []byte, us int64) []byte {
	return strconv.AppendFloat(buf, float64(us), 'f', 2, 64)
}

// durationField renders the difference endUs-startUs the same way.
func durationField(buf []byte, startUs, endUs int64) []byte {
	return microsField(buf, endUs-startUs)
}

// pidTidFor returns the pid/tid fields to serialize, honoring mock mode
// (pid fixed at 2, tid fixed at 3 when enabled).
func pidTidFor(pid int, tid int64) (int, int64) {
	if catapult.MockModeEnabled() {
		return catapult.MockPID, catapult.MockTID
	}
	return pid, tid
}
