package types

import "strings"

var _ Value = (*Array)(nil)

// Array is an ordered sequence of values. On the wire it is a document
// whose keys are the decimal indices "0", "1", ... in order.
type Array struct {
	values []Value
}

// NewArray returns an array holding the given values.
func NewArray(values ...Value) *Array {
	return &Array{values: values}
}

func (a *Array) Type() Type { return TypeArray }

// Push appends v to the array.
func (a *Array) Push(v Value) {
	a.values = append(a.values, v)
}

// Get returns the value at index i.
func (a *Array) Get(i int) (Value, bool) {
	if a == nil || i < 0 || i >= len(a.values) {
		return nil, false
	}
	return a.values[i], true
}

// Len returns the number of values.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Values returns the backing slice. Callers must not mutate it while the
// array is shared.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	return a.values
}

// Iterate calls fn for each value in order and stops at the first error,
// returning it.
func (a *Array) Iterate(fn func(i int, v Value) error) error {
	if a == nil {
		return nil
	}
	for i := range a.values {
		if err := fn(i, a.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both arrays hold equal values in the same order.
func (a *Array) Equal(other *Array) bool {
	if a == nil || other == nil {
		return a.Len() == 0 && other.Len() == 0
	}
	if len(a.values) != len(other.values) {
		return false
	}
	for i := range a.values {
		if !Equal(a.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	if a == nil {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range a.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.values[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}
