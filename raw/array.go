package raw

import (
	"github.com/chaisql/docwire/types"
	"github.com/cockroachdb/errors"
)

// Array is an encoded array viewed in place. On the wire an array is a
// document keyed by decimal indices; the view ignores the key bytes and
// exposes elements by position.
type Array []byte

// NewArray checks b's envelope and returns it as an Array.
func NewArray(b []byte) (Array, error) {
	if err := checkEnvelope(b); err != nil {
		return nil, err
	}
	return Array(b), nil
}

// Iter returns an iterator positioned before the first element.
func (a Array) Iter() *Iterator {
	return &Iterator{buf: a, off: 4}
}

// Iterate calls fn for each element in order with its position.
func (a Array) Iterate(fn func(i int, el Element) error) error {
	it := a.Iter()
	i := 0
	for it.Next() {
		if err := fn(i, it.Element()); err != nil {
			return err
		}
		i++
	}
	return it.Err()
}

// Index returns the element at position i. The scan is linear from the
// start; absence is reported as types.ErrKeyNotFound.
func (a Array) Index(i int) (Element, error) {
	if i < 0 {
		return Element{}, errors.Wrapf(types.ErrKeyNotFound, "index %d", i)
	}
	it := a.Iter()
	n := 0
	for it.Next() {
		if n == i {
			return it.Element(), nil
		}
		n++
	}
	if err := it.Err(); err != nil {
		return Element{}, err
	}
	return Element{}, errors.Wrapf(types.ErrKeyNotFound, "index %d in an array of %d", i, n)
}

// Count walks the array and returns the number of elements.
func (a Array) Count() (int, error) {
	it := a.Iter()
	n := 0
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

// Values materializes every element in order.
func (a Array) Values() ([]types.Value, error) {
	var vs []types.Value
	err := a.Iterate(func(_ int, el Element) error {
		v, err := el.Value()
		if err != nil {
			return err
		}
		vs = append(vs, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vs, nil
}
