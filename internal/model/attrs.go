package model

// Attrs is an insertion-ordered mapping of attribute name to Value.
// Order matters for deterministic output (exports, merges, suffixing),
// so a plain map is not enough.
type Attrs struct {
	keys   []string
	values map[string]Value
}

// NewAttrs returns an empty attribute mapping.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]Value)}
}

// Set stores a value under name, appending the key on first insertion
// and overwriting in place on re-insertion.
func (a *Attrs) Set(name string, v Value) {
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = v
}

// Get returns the value for name. The second result is false when the
// key is absent (as opposed to present with a null value).
func (a *Attrs) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Keys returns the attribute names in insertion order. The returned
// slice is owned by the caller.
func (a *Attrs) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	return len(a.keys)
}

// Clone returns a deep copy.
func (a *Attrs) Clone() *Attrs {
	c := &Attrs{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]Value, len(a.values)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

// Float returns the numeric value for name, or false when the key is
// absent, null, or not a number.
func (a *Attrs) Float(name string) (float64, bool) {
	v, ok := a.values[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}
