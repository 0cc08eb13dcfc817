package catapult

import "testing"

func TestMockClockStartsAtZeroIncrementsByOne(t *testing.T) {
	c := NewMockClock()
	for i := int64(0); i < 5; i++ {
		if got := c.NowMicros(); got != i {
			t.Fatalf("NowMicros() call %d = %d, want %d", i, got, i)
		}
	}
}

func TestRealClockMonotonicNonNegative(t *testing.T) {
	c := NewRealClock()
	a := c.NowMicros()
	b := c.NowMicros()
	if a < 0 || b < a {
		t.Fatalf("expected non-negative, non-decreasing readings, got %d then %d", a, b)
	}
}

// Mock mode is process-wide and one-way, so this is the only place in
// the package that exercises EnableMockMode — every other test that
// needs it inherits whatever state this test leaves behind.
func TestEnableMockModeIsOneWay(t *testing.T) {
	EnableMockMode()
	if !MockModeEnabled() {
		t.Fatal("expected mock mode enabled after EnableMockMode")
	}
	if MockPID != 2 || MockTID != 3 {
		t.Fatalf("unexpected mock identifiers: pid=%d tid=%d", MockPID, MockTID)
	}
}
