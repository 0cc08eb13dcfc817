package backend

import (
	"testing"

	"spantrace/trace/catapult"
)

func TestSpanRegistryDefineTake(t *testing.T) {
	r := newSpanRegistry()
	id := catapult.SpanID(1)
	r.define(id, registryEntry{ThreadID: 3, Name: "x", StartUs: 10})

	if r.len() != 1 {
		t.Fatalf("len() = %d, want 1", r.len())
	}
	entry, ok := r.take(id)
	if !ok {
		t.Fatal("expected entry present")
	}
	if entry.Name != "x" || entry.StartUs != 10 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if r.len() != 0 {
		t.Fatalf("len() after take = %d, want 0", r.len())
	}
}

func TestSpanRegistryTakeMiss(t *testing.T) {
	r := newSpanRegistry()
	_, ok := r.take(catapult.SpanID(42))
	if ok {
		t.Fatal("expected miss on empty registry")
	}
}
