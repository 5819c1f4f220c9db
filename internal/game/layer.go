package game

// Object is one entry in a positioned-object layer: a free-form position
// plus an optional scalar value (only meaningful on value-bearing layers).
type Object struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value any     `json:"value,omitempty"`
}

// Layer is a named, fixed-length sequence of positioned objects synchronized
// as a unit. Entries are never added, removed, or reordered after creation;
// only mutated in place.
type Layer struct {
	name         string
	valueBearing bool
	objects      []Object
}

func newLayer(name string, valueBearing bool, objects []Object) *Layer {
	return &Layer{name: name, valueBearing: valueBearing, objects: objects}
}

// Name returns the layer's wire name (e.g. "dots", "c-images").
func (l *Layer) Name() string { return l.name }

// ValueBearing reports whether entries carry a meaningful value.
func (l *Layer) ValueBearing() bool { return l.valueBearing }

// Len returns the fixed number of entries.
func (l *Layer) Len() int { return len(l.objects) }

// move overwrites the position at index, leaving the value untouched.
// Out-of-range indices are a no-op.
func (l *Layer) move(index int, x, y float64) bool {
	if index < 0 || index >= len(l.objects) {
		return false
	}
	l.objects[index].X = x
	l.objects[index].Y = y
	return true
}

// setValue overwrites the value at index. No-op for non-value-bearing
// layers and out-of-range indices.
func (l *Layer) setValue(index int, value any) bool {
	if !l.valueBearing {
		return false
	}
	if index < 0 || index >= len(l.objects) {
		return false
	}
	l.objects[index].Value = value
	return true
}

// snapshot returns a copy of the layer's entries.
func (l *Layer) snapshot() []Object {
	out := make([]Object, len(l.objects))
	copy(out, l.objects)
	return out
}
