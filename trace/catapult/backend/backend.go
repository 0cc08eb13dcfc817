package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"spantrace/internal/diag"
	"spantrace/trace/catapult"
)

const defaultFlushInterval = 500 * time.Millisecond

// Options configures a Backend.
type Options struct {
	// Sink receives the JSON document. If Closer is non-nil it is
	// closed on shutdown.
	Sink   io.Writer
	Closer io.Closer

	// FlushInterval controls the ticker goroutine's period. Zero means
	// defaultFlushInterval.
	FlushInterval time.Duration

	// Clock overrides timestamp sourcing; nil means catapult.NewRealClock().
	Clock catapult.Clock

	// Logger receives diagnostic-channel messages. Nil means logrus.StandardLogger().
	Logger *logrus.Logger

	// Metrics, if non-nil, receives self-observability counters.
	Metrics *Metrics
}

// Backend is the reference collector: a span-id generator, a blocking
// queue, a writer goroutine and a ticker goroutine.
type Backend struct {
	queue   *catapult.Queue[catapult.Event]
	clock   catapult.Clock
	log     *logrus.Logger
	metrics *Metrics

	pid        int
	nextSpanID int64 // atomic

	active atomic.Bool

	writerDone chan struct{}
	flushEvery time.Duration

	jw       *jsonWriter
	registry *spanRegistry
}

// New constructs a Backend and starts its writer and ticker goroutines.
func New(opts Options) (*Backend, error) {
	if opts.Sink == nil {
		return nil, errors.New("catapult/backend: Options.Sink is required")
	}
	jw, err := newJSONWriter(opts.Sink, opts.Closer)
	if err != nil {
		return nil, fmt.Errorf("catapult/backend: open writer: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = catapult.NewRealClock()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	flush := opts.FlushInterval
	if flush <= 0 {
		flush = defaultFlushInterval
	}

	b := &Backend{
		pid:        os.Getpid(),
		queue:      catapult.NewQueue[catapult.Event](),
		clock:      clock,
		log:        log,
		metrics:    opts.Metrics,
		writerDone: make(chan struct{}),
		flushEvery: flush,
		jw:         jw,
		registry:   newSpanRegistry(),
	}
	b.active.Store(true)

	go b.runWriter()
	go b.runTicker()

	return b, nil
}

// NewStdout opens a backend writing to os.Stdout.
func NewStdout(opts Options) (*Backend, error) {
	opts.Sink = os.Stdout
	opts.Closer = nil
	return New(opts)
}

// NewStderr opens a backend writing to os.Stderr.
func NewStderr(opts Options) (*Backend, error) {
	opts.Sink = os.Stderr
	opts.Closer = nil
	return New(opts)
}

// NewFile opens path (creating it, truncating any existing content) and
// returns a backend that closes it on shutdown.
func NewFile(path string, opts Options) (*Backend, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("catapult/backend: open %s: %w", path, err)
	}
	opts.Sink = f
	opts.Closer = f
	return New(opts)
}

func (b *Backend) allocSpanID() catapult.SpanID {
	return catapult.SpanID(atomic.AddInt64(&b.nextSpanID, 1) - 1)
}

func (b *Backend) tid() int64 {
	return currentGoroutineHint()
}

// currentGoroutineHint returns a best-effort thread-like identifier: a
// hash of the first bytes of the calling goroutine's stack trace, so it
// is neither guaranteed unique nor stable. Go has no stable goroutine id, so FIFO
// ordering within one emitting goroutine is what the collector actually
// guarantees; this value is carried through only for display.
func currentGoroutineHint() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return int64(hashBytes(buf[:n]))
}

func hashBytes(b []byte) uint32 {
	var h uint32 = 2166136261
	for _, c := range b {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

func (b *Backend) push(e catapult.Event) {
	if err := b.queue.Push(e); err != nil {
		// The queue is only ever closed by Shutdown, at which point no
		// further emission is meaningful to the caller; silently drop,
		// matching the "no exceptions on the hot emission path" policy.
		return
	}
	if b.metrics != nil {
		b.metrics.observeEnqueued()
	}
}

// WithSpan implements catapult.Collector.
func (b *Backend) WithSpan(site catapult.SiteInfo, attrs catapult.Attrs, name string, body func(id catapult.SpanID) error) error {
	id := b.allocSpanID()
	startTid := b.tid()
	b.push(catapult.Event{
		Kind:     catapult.EventSpanDefined,
		ThreadID: startTid,
		TimeUs:   b.clock.NowMicros(),
		Name:     name,
		Attrs:    attrs,
		Span:     id,
		FuncName: site.Function,
	})
	defer func() {
		b.push(catapult.Event{
			Kind:     catapult.EventSpanExited,
			ThreadID: startTid,
			TimeUs:   b.clock.NowMicros(),
			Span:     id,
		})
	}()
	return body(id)
}

// EnterManualSpan implements catapult.Collector.
func (b *Backend) EnterManualSpan(opts catapult.ManualSpanOptions) catapult.ExplicitSpan {
	id := b.allocSpanID()
	if parentID, ok := catapult.ParentAsyncID(opts.Parent); ok {
		id = parentID
	}
	span := catapult.NewExplicitSpan(id, opts.Name, opts.Flavor)
	b.push(catapult.Event{
		Kind:     catapult.EventManualSpanEntered,
		ThreadID: b.tid(),
		TimeUs:   b.clock.NowMicros(),
		Name:     opts.Name,
		Attrs:    opts.Attrs,
		ManualID: id,
		Flavor:   opts.Flavor,
		FuncName: opts.Site.Function,
	})
	return span
}

// ExitManualSpan implements catapult.Collector.
func (b *Backend) ExitManualSpan(span catapult.ExplicitSpan) {
	b.push(catapult.Event{
		Kind:     catapult.EventManualSpanExited,
		ThreadID: b.tid(),
		TimeUs:   b.clock.NowMicros(),
		Name:     span.Name(),
		ManualID: span.AsyncID(),
		Flavor:   span.FlavorOf(),
	})
}

// Message implements catapult.Collector.
func (b *Backend) Message(span *catapult.SpanID, attrs catapult.Attrs, msg string) {
	b.push(catapult.Event{
		Kind:     catapult.EventMessage,
		ThreadID: b.tid(),
		TimeUs:   b.clock.NowMicros(),
		Name:     msg,
		Attrs:    attrs,
	})
}

// CounterInt implements catapult.Collector.
func (b *Backend) CounterInt(name string, v int64) {
	b.push(catapult.Event{
		Kind:     catapult.EventCounter,
		ThreadID: b.tid(),
		TimeUs:   b.clock.NowMicros(),
		Name:     name,
		Counter:  catapult.CounterValue{I: v},
	})
}

// CounterFloat implements catapult.Collector.
func (b *Backend) CounterFloat(name string, v float64) {
	b.push(catapult.Event{
		Kind:     catapult.EventCounter,
		ThreadID: b.tid(),
		TimeUs:   b.clock.NowMicros(),
		Name:     name,
		Counter:  catapult.CounterValue{IsFloat: true, F: v},
	})
}

// NameThread implements catapult.Collector.
func (b *Backend) NameThread(name string) {
	b.push(catapult.Event{
		Kind:        catapult.EventThreadName,
		ThreadID:    b.tid(),
		TimeUs:      b.clock.NowMicros(),
		DisplayName: name,
	})
}

// NameProcess implements catapult.Collector.
func (b *Backend) NameProcess(name string) {
	b.push(catapult.Event{
		Kind:        catapult.EventProcessName,
		TimeUs:      b.clock.NowMicros(),
		DisplayName: name,
	})
}

// Shutdown implements catapult.Collector. It closes the queue and waits
// for the writer goroutine to drain and finish; the ticker goroutine
// observes the closure on its own next push and exits without being
// joined.
func (b *Backend) Shutdown() {
	if !b.active.CompareAndSwap(true, false) {
		return
	}
	b.queue.Close()
	<-b.writerDone
}

func (b *Backend) runTicker() {
	for {
		time.Sleep(b.flushEvery)
		if err := b.queue.Push(catapult.Event{Kind: catapult.EventTick}); err != nil {
			return
		}
	}
}

func (b *Backend) runWriter() {
	defer close(b.writerDone)
	var local []catapult.Event
	for {
		if err := b.queue.Transfer(&local); err != nil {
			b.finish()
			return
		}
		for _, e := range local {
			if err := b.handle(e); err != nil {
				b.log.WithFields(diag.Warning(diag.CodeSinkWriteFailed, "backend", "write failed, dropping subsequent events").WithCause(err).Fields()).Warn("catapult/backend: write failed")
				b.drainUntilClosed()
				b.finish()
				return
			}
		}
		local = local[:0]
	}
}

// drainUntilClosed empties the queue without writing, used once the
// sink has failed irrecoverably: further events are still accepted (so
// emitters never block) and silently discarded until Shutdown closes
// the queue.
func (b *Backend) drainUntilClosed() {
	var local []catapult.Event
	for b.queue.Transfer(&local) == nil {
		local = local[:0]
	}
}

func (b *Backend) finish() {
	if n := b.registry.len(); n > 0 {
		b.log.WithFields(diag.Warning(diag.CodeUnclosedSpans, "backend", "shutting down with unclosed spans").WithMetadata("unclosed_spans", n).Fields()).Warn("catapult/backend: unclosed spans at shutdown")
	}
	if err := b.jw.close(); err != nil {
		b.log.WithFields(diag.Warning(diag.CodeSinkWriteFailed, "backend", "error closing output").WithCause(err).Fields()).Warn("catapult/backend: close failed")
	}
}

func (b *Backend) handle(e catapult.Event) error {
	pid := b.pid
	switch e.Kind {
	case catapult.EventTick:
		if b.metrics != nil {
			b.metrics.observeQueueDepth(b.queue.Len())
		}
		return b.jw.flush()

	case catapult.EventSpanDefined:
		b.registry.define(e.Span, registryEntry{
			ThreadID: e.ThreadID,
			Name:     e.Name,
			StartUs:  e.TimeUs,
			Attrs:    e.Attrs,
		})
		return nil

	case catapult.EventSpanExited:
		entry, ok := b.registry.take(e.Span)
		if !ok {
			b.log.WithFields(diag.Warning(diag.CodeMissingSpan, "backend", "exit for unknown span, dropping").WithMetadata("span", int64(e.Span)).Fields()).Warn("catapult/backend: missing span at exit")
			return nil
		}
		buf := appendDurationEvent(nil, pid, entry.ThreadID, entry.Name, entry.StartUs, e.TimeUs, entry.Attrs)
		return b.emit(buf)

	case catapult.EventManualSpanEntered:
		buf := appendManualBeginEvent(nil, pid, e.ThreadID, e.ManualID, e.Name, e.TimeUs, e.Flavor == catapult.FlavorSync, e.Attrs)
		return b.emit(buf)

	case catapult.EventManualSpanExited:
		buf := appendManualEndEvent(nil, pid, e.ThreadID, e.ManualID, e.Name, e.TimeUs, e.Flavor == catapult.FlavorSync)
		return b.emit(buf)

	case catapult.EventMessage:
		buf := appendInstantEvent(nil, pid, e.ThreadID, e.Name, e.TimeUs, e.Attrs)
		return b.emit(buf)

	case catapult.EventCounter:
		buf := appendCounterEvent(nil, pid, e.ThreadID, e.Name, e.TimeUs, e.Counter)
		return b.emit(buf)

	case catapult.EventThreadName:
		buf := appendThreadNameEvent(nil, pid, e.ThreadID, e.DisplayName)
		return b.emit(buf)

	case catapult.EventProcessName:
		buf := appendProcessNameEvent(nil, pid, e.DisplayName)
		return b.emit(buf)

	default:
		return nil
	}
}

func (b *Backend) emit(raw []byte) error {
	if err := b.jw.writeEvent(raw); err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.observeWritten()
	}
	return nil
}

var _ catapult.Collector = (*Backend)(nil)
