package catapult

import (
	"sync/atomic"
	"time"
)

// Clock produces monotonic microsecond timestamps, relative to some
// fixed epoch chosen by the implementation. Backend engines sample it
// once on span entry and once on span/exit to compute durations.
type Clock interface {
	NowMicros() int64
}

// realClock is the production Clock: wall time since process-observed
// start, converted to microseconds via the runtime's monotonic reading.
type realClock struct {
	start time.Time
}

// NewRealClock returns a Clock anchored at the current instant; elapsed
// time from that instant forward is reported in microseconds.
func NewRealClock() Clock {
	return &realClock{start: time.Now()}
}

func (c *realClock) NowMicros() int64 {
	return time.Since(c.start).Microseconds()
}

// mockClock is the test-hook clock: a monotonically increasing integer
// starting at 0, incrementing by 1 per observation. Enabling mock mode
// is process-wide and one-way.
type mockClock struct {
	next int64
}

// NewMockClock returns a Clock that starts at 0 and advances by 1 on
// every call to NowMicros.
func NewMockClock() Clock {
	return &mockClock{}
}

func (c *mockClock) NowMicros() int64 {
	return atomic.AddInt64(&c.next, 1) - 1
}

// mockModeEnabled is the process-wide, one-way mock-mode flag: once
// enabled, pid is fixed at 2 and tid is fixed at 3.
var mockModeEnabled int32

// EnableMockMode turns on mock mode for the process. It cannot be
// disabled once enabled.
func EnableMockMode() {
	atomic.StoreInt32(&mockModeEnabled, 1)
}

// MockModeEnabled reports whether mock mode is active.
func MockModeEnabled() bool {
	return atomic.LoadInt32(&mockModeEnabled) != 0
}

// MockPID and MockTID are the fixed identifiers mock mode substitutes
// for the real process id and OS thread id.
const (
	MockPID = 2
	MockTID = 3
)
