package trace

import (
	"errors"
	"testing"

	"spantrace/trace/catapult"
)

type fakeCollector struct {
	shutdownCalls int
	messages      []string
}

func (f *fakeCollector) WithSpan(_ catapult.SiteInfo, _ catapult.Attrs, _ string, body func(catapult.SpanID) error) error {
	return body(catapult.SpanID(1))
}
func (f *fakeCollector) EnterManualSpan(opts catapult.ManualSpanOptions) catapult.ExplicitSpan {
	return catapult.NewExplicitSpan(catapult.SpanID(2), opts.Name, opts.Flavor)
}
func (f *fakeCollector) ExitManualSpan(catapult.ExplicitSpan) {}
func (f *fakeCollector) Message(_ *catapult.SpanID, _ catapult.Attrs, msg string) {
	f.messages = append(f.messages, msg)
}
func (f *fakeCollector) CounterInt(string, int64)      {}
func (f *fakeCollector) CounterFloat(string, float64)  {}
func (f *fakeCollector) NameThread(string)             {}
func (f *fakeCollector) NameProcess(string)             {}
func (f *fakeCollector) Shutdown()                     { f.shutdownCalls++ }

func TestWithSpanRunsBodyWithNoCollectorInstalled(t *testing.T) {
	Shutdown() // ensure clean slate regardless of test order
	var sawID catapult.SpanID = catapult.SpanID(123)
	err := WithSpan("x", nil, func(id catapult.SpanID) error {
		sawID = id
		return nil
	})
	if err != nil {
		t.Fatalf("WithSpan: %v", err)
	}
	if sawID != catapult.NoSpan {
		t.Fatalf("expected NoSpan when uninstalled, got %d", sawID)
	}
}

func TestWithSpanPropagatesBodyError(t *testing.T) {
	Shutdown()
	want := errors.New("boom")
	err := WithSpan("x", nil, func(catapult.SpanID) error { return want })
	if err != want {
		t.Fatalf("WithSpan error = %v, want %v", err, want)
	}
}

func TestInstallCurrentShutdown(t *testing.T) {
	f := &fakeCollector{}
	Install(f)
	if Current() != catapult.Collector(f) {
		t.Fatal("Current() did not return installed collector")
	}
	Message(nil, "hi")
	if len(f.messages) != 1 || f.messages[0] != "hi" {
		t.Fatalf("unexpected messages: %v", f.messages)
	}
	Shutdown()
	if f.shutdownCalls != 1 {
		t.Fatalf("shutdownCalls = %d, want 1", f.shutdownCalls)
	}
	if Current() != nil {
		t.Fatal("expected no collector installed after Shutdown")
	}
}

func TestShutdownNoopWhenNothingInstalled(t *testing.T) {
	Shutdown()
	Shutdown() // must not panic
}
