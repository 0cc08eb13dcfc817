package catapult

import "sync/atomic"

// keyCounter allocates process-unique key ids. Every key ever created,
// regardless of value type, draws from this single counter, which is
// what makes two independently created keys distinct even when created
// with the same V.
var keyCounter int64

// Key is a typed, process-unique identifier for a binding in a Map. The
// value type V is carried in the type parameter rather than in a
// runtime tag, so Find returns a V directly with no type assertion at
// the call site and no way to observe a binding under the wrong type.
type Key[V any] struct {
	id int64
}

// NewKey allocates a new key bound to value type V. Calling NewKey[V]()
// twice produces two distinct keys even though V is identical both
// times.
func NewKey[V any]() Key[V] {
	return Key[V]{id: atomic.AddInt64(&keyCounter, 1)}
}

// ID returns the key's process-unique integer id.
func (k Key[V]) ID() int64 { return k.id }

// Map is an immutable, ordered, heterogeneous binding set keyed by
// typed Key values. Every operation returns a new Map; the previous
// value remains valid and unaffected.
//
// The zero Map is a valid, empty map.
type Map struct {
	bindings map[int64]any
	order    []int64
}

// Add returns a Map containing the binding (k, v). An existing binding
// for k is replaced in place (its position in iteration order is kept).
func Add[V any](k Key[V], v V, m Map) Map {
	next := m.clone()
	if _, exists := next.bindings[k.id]; !exists {
		next.order = append(next.order, k.id)
	}
	next.bindings[k.id] = v
	return next
}

// Find performs a total lookup: ok is false when the key is absent.
func Find[V any](k Key[V], m Map) (v V, ok bool) {
	raw, exists := m.bindings[k.id]
	if !exists {
		return v, false
	}
	return raw.(V), true
}

// FindRequired performs the lookup of Find but panics with a
// programmer-error message when the key is absent.
func FindRequired[V any](k Key[V], m Map) V {
	v, ok := Find(k, m)
	if !ok {
		panic("catapult: missing key in metadata map")
	}
	return v
}

// Remove returns a Map with k's binding removed, if present.
func Remove[V any](k Key[V], m Map) Map {
	if _, exists := m.bindings[k.id]; !exists {
		return m
	}
	next := m.clone()
	delete(next.bindings, k.id)
	for i, id := range next.order {
		if id == k.id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// Contains reports whether k has a binding in m.
func Contains[V any](k Key[V], m Map) bool {
	_, exists := m.bindings[k.id]
	return exists
}

// Len returns the number of bindings in m.
func (m Map) Len() int { return len(m.order) }

// Pair is one (key id, value) binding, used by ToList/FromList to walk
// a Map without committing to any one value type.
type Pair struct {
	KeyID int64
	Value any
}

// ToList flattens m into its bindings in insertion order.
func ToList(m Map) []Pair {
	out := make([]Pair, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, Pair{KeyID: id, Value: m.bindings[id]})
	}
	return out
}

// FromList rebuilds a Map from a Pair list previously produced by
// ToList. KeyID values that did not originate from a real Key are
// accepted verbatim — FromList trusts its caller.
func FromList(pairs []Pair) Map {
	m := Map{bindings: make(map[int64]any, len(pairs)), order: make([]int64, 0, len(pairs))}
	for _, p := range pairs {
		if _, exists := m.bindings[p.KeyID]; !exists {
			m.order = append(m.order, p.KeyID)
		}
		m.bindings[p.KeyID] = p.Value
	}
	return m
}

// Iter calls f for every binding in m, in insertion order.
func Iter(m Map, f func(Pair)) {
	for _, id := range m.order {
		f(Pair{KeyID: id, Value: m.bindings[id]})
	}
}

func (m Map) clone() Map {
	next := Map{
		bindings: make(map[int64]any, len(m.bindings)+1),
		order:    make([]int64, len(m.order), len(m.order)+1),
	}
	for k, v := range m.bindings {
		next.bindings[k] = v
	}
	copy(next.order, m.order)
	return next
}
