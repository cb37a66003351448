package yieldfrom

import (
	"iter"
	"reflect"
)

// Kind classifies the value a Marker was built from.
type Kind int

const (
	NotIterable Kind = iota
	IteratorCapable
	IterableOnly
)

func (k Kind) String() string {
	switch k {
	case NotIterable:
		return "NotIterable"
	case IteratorCapable:
		return "IteratorCapable"
	case IterableOnly:
		return "IterableOnly"
	}
	return "Kind(?)"
}

// Marker asks a Driver to drive an iterator on the yielding frame's behalf.
// It is classified once, when built, and never changes afterwards.
type Marker struct {
	inner any
	kind  Kind
	it    Iterator
}

// From wraps v in a Marker, coercing it into an iterator:
//   - nil, or a nil pointer, channel, func or map, is not iterable;
//   - an Iterator is used as is;
//   - an Iterable, iter.Seq, slice, array, string, map, receive channel or
//     Next/Value/Error cursor yields a freshly obtained iterator;
//   - anything not iterable becomes an iterator that is already exhausted
//     with a nil result.
func From(v any) *Marker {
	m := &Marker{inner: v}
	m.kind, m.it = classify(v)
	return m
}

// Inner returns the value the marker was built from.
func (m *Marker) Inner() any { return m.inner }

func (m *Marker) Kind() Kind { return m.kind }

// Iterable reports whether the wrapped value was genuinely iterable.
func (m *Marker) Iterable() bool { return m.kind != NotIterable }

// Iterator returns the iterator the marker delegates to.
func (m *Marker) Iterator() Iterator {
	if m == nil || m.it == nil {
		return emptyIterator{}
	}
	return m.it
}

// isNil reports whether v is nil or a nil pointer, channel, func, map or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func classify(v any) (Kind, Iterator) {
	if isNil(v) {
		return NotIterable, emptyIterator{}
	}
	switch v := v.(type) {
	case Iterator:
		return IteratorCapable, v
	case Iterable:
		if it := v.Iter(); it != nil {
			return IterableOnly, it
		}
		return IterableOnly, emptyIterator{}
	case iter.Seq[any]:
		return IterableOnly, NewSeqAdapter(v)
	}

	rv := reflect.ValueOf(v)
	if it := cursorAdapter(rv); it != nil {
		return IterableOnly, it
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return IterableOnly, &indexAdapter{v: rv, index: -1}
	case reflect.String:
		return IterableOnly, &runeAdapter{runes: []rune(rv.String()), index: -1}
	case reflect.Map:
		return IterableOnly, newKeyAdapter(rv)
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir != 0 {
			return IterableOnly, &chanAdapter{v: rv}
		}
	case reflect.Func:
		if seq, ok := reflectSeq(rv); ok {
			return IterableOnly, NewSeqAdapter(seq)
		}
	}
	return NotIterable, emptyIterator{}
}
