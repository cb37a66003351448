package yieldfrom

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
)

// IteratorFunc adapts a plain function to the Iterator interface.
type IteratorFunc func() (any, error)

func (f IteratorFunc) Next() (any, error) {
	return f()
}

type emptyIterator struct{}

func (emptyIterator) Next() (any, error) {
	return nil, stopWith(nil)
}

type SliceAdapter[T any] struct {
	slice []T
	index int
}

func NewSliceAdapter[T any](slice []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{slice: slice, index: -1}
}

func (s *SliceAdapter[T]) Next() (any, error) {
	if s.index+1 >= len(s.slice) {
		s.index = len(s.slice)
		return nil, stopWith(nil)
	}
	s.index++
	return s.slice[s.index], nil
}

type Pair[First, Second any] struct {
	First  First
	Second Second
}

func NewPair[First, Second any](first First, second Second) Pair[First, Second] {
	return Pair[First, Second]{First: first, Second: second}
}

// MapAdapter yields the entries of a map as Pairs, in ascending key order.
type MapAdapter[K cmp.Ordered, V any] struct {
	items []Pair[K, V]
	index int
}

func NewMapAdapter[K cmp.Ordered, V any](m map[K]V) *MapAdapter[K, V] {
	items := make([]Pair[K, V], 0, len(m))
	for key, value := range m {
		items = append(items, NewPair(key, value))
	}
	slices.SortFunc(items, func(a, b Pair[K, V]) int { return cmp.Compare(a.First, b.First) })
	return &MapAdapter[K, V]{items: items, index: -1}
}

func (m *MapAdapter[K, V]) Next() (any, error) {
	if m.index+1 >= len(m.items) {
		m.index = len(m.items)
		return nil, stopWith(nil)
	}
	m.index++
	return m.items[m.index], nil
}

// SeqAdapter drives an iter.Seq through iter.Pull. The sequence starts on the
// first Next; Close stops it early.
type SeqAdapter struct {
	seq  iter.Seq[any]
	next func() (any, bool)
	stop func()
}

func NewSeqAdapter(seq iter.Seq[any]) *SeqAdapter {
	return &SeqAdapter{seq: seq}
}

func (s *SeqAdapter) Next() (any, error) {
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.seq)
	}
	if v, ok := s.next(); ok {
		return v, nil
	}
	return nil, stopWith(nil)
}

func (s *SeqAdapter) Close() error {
	if s.stop != nil {
		s.stop()
	}
	return nil
}

// indexAdapter walks a slice or array.
type indexAdapter struct {
	v     reflect.Value
	index int
}

func (a *indexAdapter) Next() (any, error) {
	if a.index+1 >= a.v.Len() {
		a.index = a.v.Len()
		return nil, stopWith(nil)
	}
	a.index++
	return a.v.Index(a.index).Interface(), nil
}

type runeAdapter struct {
	runes []rune
	index int
}

func (a *runeAdapter) Next() (any, error) {
	if a.index+1 >= len(a.runes) {
		a.index = len(a.runes)
		return nil, stopWith(nil)
	}
	a.index++
	return a.runes[a.index], nil
}

// keyAdapter walks the keys of a map, sorted when the key kind is ordered.
type keyAdapter struct {
	keys  []reflect.Value
	index int
}

func newKeyAdapter(m reflect.Value) *keyAdapter {
	keys := m.MapKeys()
	if compare := keyOrder(m.Type().Key().Kind()); compare != nil {
		slices.SortFunc(keys, compare)
	}
	return &keyAdapter{keys: keys, index: -1}
}

func keyOrder(kind reflect.Kind) func(a, b reflect.Value) int {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }
	}
	return nil
}

func (a *keyAdapter) Next() (any, error) {
	if a.index+1 >= len(a.keys) {
		a.index = len(a.keys)
		return nil, stopWith(nil)
	}
	a.index++
	return a.keys[a.index].Interface(), nil
}

type chanAdapter struct {
	v reflect.Value
}

func (a *chanAdapter) Next() (any, error) {
	if v, ok := a.v.Recv(); ok {
		return v.Interface(), nil
	}
	return nil, stopWith(nil)
}

var errorType = reflect.TypeFor[error]()

// cursorIterator adapts the Next() bool / Value() T / Error() error protocol.
type cursorIterator struct {
	next, value, err reflect.Value
}

func cursorAdapter(rv reflect.Value) Iterator {
	if !rv.IsValid() {
		return nil
	}
	next, value, errf := rv.MethodByName("Next"), rv.MethodByName("Value"), rv.MethodByName("Error")
	if !next.IsValid() || !value.IsValid() || !errf.IsValid() {
		return nil
	}
	if t := next.Type(); t.NumIn() != 0 || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		return nil
	}
	if t := value.Type(); t.NumIn() != 0 || t.NumOut() != 1 {
		return nil
	}
	if t := errf.Type(); t.NumIn() != 0 || t.NumOut() != 1 || t.Out(0) != errorType {
		return nil
	}
	return &cursorIterator{next: next, value: value, err: errf}
}

func (c *cursorIterator) Next() (any, error) {
	if c.next.Call(nil)[0].Bool() {
		return c.value.Call(nil)[0].Interface(), nil
	}
	if err, _ := c.err.Call(nil)[0].Interface().(error); err != nil {
		return nil, err
	}
	return nil, stopWith(nil)
}

// reflectSeq converts a func(yield func(T) bool) of any T to an iter.Seq[any].
func reflectSeq(rv reflect.Value) (iter.Seq[any], bool) {
	t := rv.Type()
	if rv.IsNil() || t.IsVariadic() || t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}
	yt := t.In(0)
	if yt.Kind() != reflect.Func || yt.IsVariadic() || yt.NumIn() != 1 || yt.NumOut() != 1 || yt.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return func(yield func(any) bool) {
		fn := reflect.MakeFunc(yt, func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(yield(args[0].Interface())).Convert(yt.Out(0))}
		})
		rv.Call([]reflect.Value{fn})
	}, true
}
