package catapult

// asyncIDKey and asyncDataKey are the two bindings every ExplicitSpan
// carries: the inherited/allocated correlation id, and the (name,
// flavor) record the collector needs again at exit. Storing both
// inside the ExplicitSpan's own metadata is what lets the collector
// stay stateless with respect to manual spans.
var (
	asyncIDKey   = NewKey[SpanID]()
	asyncDataKey = NewKey[asyncData]()
)

type asyncData struct {
	Name   string
	Flavor Flavor
}

// ExplicitSpan is the owned handle for a manual span: a pair of (span
// id, metadata map). It is produced by exactly one
// EnterManualSpan call and consumed by exactly one ExitManualSpan call;
// the caller is responsible for carrying it across suspension points.
type ExplicitSpan struct {
	Meta Map
}

// NewExplicitSpan builds the ExplicitSpan returned by EnterManualSpan:
// id is either inherited from a parent or freshly allocated by the
// caller, name/flavor are the (name, flavor) record read back at exit.
func NewExplicitSpan(id SpanID, name string, flavor Flavor) ExplicitSpan {
	m := Add(asyncIDKey, id, Map{})
	m = Add(asyncDataKey, asyncData{Name: name, Flavor: flavor}, m)
	return ExplicitSpan{Meta: m}
}

// AsyncID returns the span's correlation id.
func (s ExplicitSpan) AsyncID() SpanID {
	return FindRequired(asyncIDKey, s.Meta)
}

// nameAndFlavor returns the (name, flavor) record installed at entry.
func (s ExplicitSpan) nameAndFlavor() (string, Flavor) {
	d := FindRequired(asyncDataKey, s.Meta)
	return d.Name, d.Flavor
}

// Name returns the manual span's name, as recorded at entry.
func (s ExplicitSpan) Name() string {
	name, _ := s.nameAndFlavor()
	return name
}

// FlavorOf returns the manual span's flavor, as recorded at entry.
func (s ExplicitSpan) FlavorOf() Flavor {
	_, fl := s.nameAndFlavor()
	return fl
}

// ParentAsyncID returns the id a child manual span should inherit when
// created with parent as its parent: the parent's own asyncID. It is a
// free function rather than a method so that a nil/zero parent (no
// parent given) is trivially expressed as an option at the call site.
func ParentAsyncID(parent *ExplicitSpan) (SpanID, bool) {
	if parent == nil {
		return 0, false
	}
	return parent.AsyncID(), true
}
