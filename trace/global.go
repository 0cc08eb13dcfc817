// Package trace is the public instrumentation facade: thin forwarders
// onto whatever catapult.Collector is currently installed, plus the
// process-wide installation protocol itself.
package trace

import (
	"sync/atomic"

	"spantrace/trace/catapult"
)

var active atomic.Pointer[catapult.Collector]

// Install makes c the process's active collector. At most one
// collector is active at a time; Install replaces whatever was there
// before (the caller is responsible for shutting down the previous one
// if it needs orderly draining).
func Install(c catapult.Collector) {
	active.Store(&c)
}

// Current returns the active collector, or nil if none is installed.
func Current() catapult.Collector {
	p := active.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Shutdown shuts down and clears the active collector, if any. It is
// safe to call when no collector is installed.
func Shutdown() {
	p := active.Swap(nil)
	if p == nil {
		return
	}
	(*p).Shutdown()
}
