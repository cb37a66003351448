package yieldfrom

import (
	"errors"
	"iter"
)

// Func is the body of a generator frame. Returning (r, nil) exhausts the
// frame with result r; a non-nil error propagates to whoever resumed it.
type Func func(y *Yielder) (any, error)

// resumption is what a suspended frame receives: a sent value or an injected error.
type resumption struct {
	value any
	err   error
}

// Frame is a generator frame: a body suspended at each Yield and resumed by
// Next, Send, Throw or Close. A Frame is not safe for concurrent use.
//
// A Frame runs its body in a coroutine obtained from iter.Pull. A frame that
// is abandoned before it finishes should be closed to release it.
type Frame struct {
	body Func

	next  func() (any, bool)
	stop  func()
	yield func(any) bool

	in     resumption
	result any
	err    error

	started  bool
	running  bool
	finished bool
	exiting  bool
}

// New creates a generator frame from body. The body does not run until the
// first resumption.
//
// Markers yielded by body are returned to the caller as ordinary values;
// use NewDriver or NewDelegating to have them delegated.
func New(body Func) *Frame {
	return &Frame{body: body}
}

func (f *Frame) Next() (any, error) {
	return f.resume(resumption{})
}

// Send resumes the frame, making value the result of the pending Yield.
// Sending to a frame that has not started is an ordinary first advance and
// value is ignored.
func (f *Frame) Send(value any) (any, error) {
	return f.resume(resumption{value: value})
}

// Throw resumes the frame, making err the error of the pending Yield.
// Throwing into a frame that has not started, or has finished, returns err
// without running the body.
func (f *Frame) Throw(err error) (any, error) {
	if err == nil {
		panic("yieldfrom: Throw with nil error")
	}
	return f.resume(resumption{err: err})
}

// Close finishes the frame. A suspended body sees ErrGeneratorExit from its
// pending Yield and is expected to return. Close reports the body's error
// unless it is ErrGeneratorExit or an exhaustion.
func (f *Frame) Close() error {
	if f.running {
		return ErrRunning
	}
	if !f.started {
		f.started, f.finished = true, true
		return nil
	}
	if f.finished {
		if f.stop != nil {
			f.stop()
		}
		return nil
	}

	f.running = true
	defer func() { f.running = false }()
	f.stop()

	err := f.outcome()
	if _, ok := Exhausted(err); ok || errors.Is(err, ErrGeneratorExit) {
		return nil
	}
	return err
}

// Started reports whether the frame has been resumed or closed at least once.
func (f *Frame) Started() bool { return f.started }

// Done reports whether the body has finished.
func (f *Frame) Done() bool { return f.finished }

func (f *Frame) resume(in resumption) (any, error) {
	if f.running {
		return nil, ErrRunning
	}
	if f.finished {
		if in.err != nil {
			return nil, in.err
		}
		return nil, stopWith(nil)
	}
	if !f.started {
		f.started = true
		if in.err != nil {
			f.finished = true
			return nil, in.err
		}
		in = resumption{}
		f.next, f.stop = iter.Pull(f.run)
	}

	f.in = in
	f.running = true
	defer func() { f.running = false }()

	if v, ok := f.next(); ok {
		return v, nil
	}
	return nil, f.outcome()
}

// run is the iter.Seq driven by iter.Pull.
func (f *Frame) run(yield func(any) bool) {
	f.yield = yield
	defer func() {
		f.finished = true
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case *returnSignal:
				f.result, f.err = sig.value, nil
			case exitIgnored:
				f.result, f.err = nil, ErrIgnoredExit
			default:
				panic(r)
			}
		}
	}()
	f.result, f.err = f.body(&Yielder{frame: f})
}

// outcome consumes the body's termination.
func (f *Frame) outcome() error {
	result, err := f.result, f.err
	f.result, f.err = nil, nil
	if err != nil {
		return err
	}
	return stopWith(result)
}

// Yielder is handed to a frame body and suspends it.
type Yielder struct {
	frame *Frame
}

// Yield suspends the frame, handing value to whoever resumed it. It returns
// the value sent on the next resumption (nil for Next), or the error thrown
// into the frame. After the frame is closed Yield returns ErrGeneratorExit,
// and the body should return.
func (y *Yielder) Yield(value any) (any, error) {
	f := y.frame
	if f.exiting {
		panic(exitIgnored{})
	}
	if !f.yield(value) {
		f.exiting = true
		return nil, ErrGeneratorExit
	}
	in := f.in
	f.in = resumption{}
	return in.value, in.err
}

// YieldFrom yields a marker for v. In a frame driven by a Driver the call
// evaluates to the delegated iterator's result.
func (y *Yielder) YieldFrom(v any) (any, error) {
	return y.Yield(From(v))
}
