// Package yieldfrom provides resumable generator frames and generator
// delegation for Go.
//
// A frame is a function that suspends at each Yield and is resumed by one of
// four operations: Next, Send (resume with a value), Throw (resume with an
// error) and Close. Its body returns the frame's result:
//
//	sub := yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
//		y.Yield(2)
//		y.Yield(3)
//		return 100, nil
//	})
//
// A frame driven by a Driver can delegate to another iterator by yielding a
// Marker built with From. The driver forwards every value the nested
// iterator yields, routes sent values and thrown errors into it, and hands
// its result back to the outer frame as the value of the Yield:
//
//	gen := yieldfrom.NewDelegating(func(y *yieldfrom.Yielder) (any, error) {
//		y.Yield(1)
//		ret, err := y.Yield(yieldfrom.From(sub))
//		if err != nil {
//			return nil, err
//		}
//		y.Yield(4)
//		y.Yield(ret)
//		return nil, nil
//	})
//
//	values, _, _ := yieldfrom.Collect(gen) // [1 2 3 4 100]
//
// Anything can be delegated to. Iterators are used directly; slices, maps,
// strings, channels and iter.Seq functions are iterated element by element;
// values that are not iterable delegate to nothing and produce a nil result.
//
// NewSliceAdapter and NewMapAdapter build typed iterators over a slice or a
// map; a map adapter yields Pair values in ascending key order. SeqAdapter
// pulls from an iter.Seq and can be closed early, and IteratorFunc turns a
// plain function into an Iterator.
//
// Exhaustion is reported as a *StopIteration error carrying the result; use
// Exhausted to tell it apart from failures.
package yieldfrom
