// spantrace-demo exercises the collector facade end to end: it calls
// trace.Setup (honoring TRACE/SPANTRACE_CONFIG), opens a scoped span
// and a manual async span inside it, emits a message and a counter, and
// shuts down cleanly.
package main

import (
	"fmt"
	"os"
	"time"

	"spantrace/trace"
	"spantrace/trace/catapult"
)

func main() {
	collector, err := trace.Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spantrace-demo: setup failed: %v\n", err)
		os.Exit(1)
	}
	if collector == nil {
		fmt.Fprintln(os.Stderr, "spantrace-demo: no TRACE sink configured, running untraced")
	}
	defer trace.Shutdown()

	trace.NameProcess("spantrace-demo")

	err = trace.WithSpan("demo.run", nil, func(catapult.SpanID) error {
		trace.Message(nil, "starting work")

		child := trace.EnterManualSpan("demo.async-step", catapult.ManualSpanOptions{
			Flavor: catapult.FlavorAsync,
		})
		time.Sleep(10 * time.Millisecond)
		trace.CounterInt("demo.items_processed", 1)
		trace.ExitManualSpan(child)

		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "spantrace-demo: run failed: %v\n", err)
		os.Exit(1)
	}
}
