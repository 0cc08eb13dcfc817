package catapult

// SiteInfo identifies the call site of an instrumentation call, for
// collectors that want to record it. Zero values are permitted;
// forwarders fill what's cheaply available.
type SiteInfo struct {
	Function string
	File     string
	Line     int
}

// ManualSpanOptions configures EnterManualSpan.
type ManualSpanOptions struct {
	Parent *ExplicitSpan
	Flavor Flavor
	Site   SiteInfo
	Attrs  Attrs
	Name   string
}

// Collector is the capability set the facade installs and forwards to.
// Every operation is thread-safe and none blocks longer than a bounded
// enqueue.
type Collector interface {
	// WithSpan opens a scope-span, invokes body, closes the span on
	// all exit paths (including panics), and returns body's result.
	WithSpan(site SiteInfo, attrs Attrs, name string, body func(id SpanID) error) error

	// EnterManualSpan opens an explicit span not tied to a lexical
	// scope and returns its handle.
	EnterManualSpan(opts ManualSpanOptions) ExplicitSpan

	// ExitManualSpan closes an explicit span previously produced by
	// EnterManualSpan on this same collector.
	ExitManualSpan(span ExplicitSpan)

	// Message emits an instant event. span, if non-nil, is
	// informational only.
	Message(span *SpanID, attrs Attrs, msg string)

	// CounterInt emits an integer counter sample.
	CounterInt(name string, v int64)

	// CounterFloat emits a floating point counter sample.
	CounterFloat(name string, v float64)

	// NameThread attaches a display name to the calling thread.
	NameThread(name string)

	// NameProcess attaches a display name to the process.
	NameProcess(name string)

	// Shutdown initiates orderly termination: blocks until all
	// previously enqueued events have been written and the output is
	// closed. Idempotent.
	Shutdown()
}
