package features

import "fmt"

// Vector is an ordered feature vector over the model schema. Positions are
// fixed; values default to zero so any feature a builder does not produce is
// zero-filled by construction.
type Vector struct {
	names  []string
	index  map[string]int
	values []float64
}

var schemaIndex = buildIndex(ModelSchema)

func buildIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

// NewVector returns a zero-filled vector over the model schema.
func NewVector() *Vector {
	return &Vector{
		names:  ModelSchema,
		index:  schemaIndex,
		values: make([]float64, len(ModelSchema)),
	}
}

// Len returns the vector length.
func (v *Vector) Len() int { return len(v.values) }

// Names returns the schema names backing the vector.
func (v *Vector) Names() []string { return v.names }

// Set assigns a value by feature name. Unknown names return an error so a
// builder typo surfaces in tests instead of silently dropping a feature.
func (v *Vector) Set(name string, value float64) error {
	i, ok := v.index[name]
	if !ok {
		return fmt.Errorf("feature %q not in model schema", name)
	}
	v.values[i] = value
	return nil
}

// Get returns the value for a feature name (zero for unknown names).
func (v *Vector) Get(name string) float64 {
	if i, ok := v.index[name]; ok {
		return v.values[i]
	}
	return 0
}

// Values returns the underlying value slice in schema order. The slice is
// shared; callers that mutate it mutate the vector.
func (v *Vector) Values() []float64 {
	return v.values
}

// Clone returns an independent copy of the vector.
func (v *Vector) Clone() *Vector {
	out := NewVector()
	copy(out.values, v.values)
	return out
}
