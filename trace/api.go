package trace

import "spantrace/trace/catapult"

// WithSpan runs body inside a scoped span on the active collector. When
// no collector is installed it simply runs body with catapult.NoSpan,
// so instrumented code never has to branch on whether tracing is on.
func WithSpan(name string, attrs catapult.Attrs, body func(id catapult.SpanID) error) error {
	c := Current()
	if c == nil {
		return body(catapult.NoSpan)
	}
	return c.WithSpan(catapult.SiteInfo{}, attrs, name, body)
}

// EnterManualSpan opens an explicit span that outlives the calling
// stack frame. Pair with ExitManualSpan.
func EnterManualSpan(name string, opts catapult.ManualSpanOptions) catapult.ExplicitSpan {
	opts.Name = name
	c := Current()
	if c == nil {
		return catapult.NewExplicitSpan(catapult.NoSpan, name, opts.Flavor)
	}
	return c.EnterManualSpan(opts)
}

// ExitManualSpan closes an explicit span previously returned by
// EnterManualSpan.
func ExitManualSpan(span catapult.ExplicitSpan) {
	if c := Current(); c != nil {
		c.ExitManualSpan(span)
	}
}

// Message emits an instant event carrying msg and attrs.
func Message(attrs catapult.Attrs, msg string) {
	if c := Current(); c != nil {
		c.Message(nil, attrs, msg)
	}
}

// CounterInt emits an integer counter sample.
func CounterInt(name string, v int64) {
	if c := Current(); c != nil {
		c.CounterInt(name, v)
	}
}

// CounterFloat emits a floating point counter sample.
func CounterFloat(name string, v float64) {
	if c := Current(); c != nil {
		c.CounterFloat(name, v)
	}
}

// NameThread attaches a display name to the calling thread.
func NameThread(name string) {
	if c := Current(); c != nil {
		c.NameThread(name)
	}
}

// NameProcess attaches a display name to the process.
func NameProcess(name string) {
	if c := Current(); c != nil {
		c.NameProcess(name)
	}
}
