package catapult

// Datum is a tagged attribute value attached to spans, messages and
// counters. Unlike the metadata Map (see key.go), Datum values cross
// the JSON boundary, so the set of representable shapes is closed.
type Datum struct {
	kind datumKind
	i    int64
	f    float64
	b    bool
	s    string
}

type datumKind int

const (
	datumAbsent datumKind = iota
	datumInt
	datumBool
	datumString
	datumFloat
)

// AbsentDatum is the zero value of Datum and serializes as JSON null.
var AbsentDatum = Datum{kind: datumAbsent}

// Int wraps an integer attribute value.
func Int(v int64) Datum { return Datum{kind: datumInt, i: v} }

// Bool wraps a boolean attribute value.
func Bool(v bool) Datum { return Datum{kind: datumBool, b: v} }

// String wraps a string attribute value.
func String(v string) Datum { return Datum{kind: datumString, s: v} }

// Float wraps a floating point attribute value.
func Float(v float64) Datum { return Datum{kind: datumFloat, f: v} }

// IsAbsent reports whether the datum carries no value.
func (d Datum) IsAbsent() bool { return d.kind == datumAbsent }

// Attr is a single (name, value) pair carried by events that accept
// attributes (message, span define, manual span enter).
type Attr struct {
	Key   string
	Value Datum
}

// Attrs is an ordered attribute list. Order is preserved through to the
// serialized args object for deterministic snapshot testing, though per
// spec the output is a JSON object and object key order is not itself a
// contract — what is a contract is that every attribute round-trips.
type Attrs []Attr
