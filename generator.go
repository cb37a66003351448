package yieldfrom

import (
	"errors"
	"fmt"
)

// Iterator is the minimal capability set: something that can be advanced.
// Next returns the next value, or an error. Exhaustion is reported as a
// *StopIteration error carrying the iterator's result.
type Iterator interface {
	Next() (any, error)
}

// Sender is implemented by iterators that accept a value on resumption.
type Sender interface {
	Send(value any) (any, error)
}

// Thrower is implemented by iterators that accept an injected error on resumption.
type Thrower interface {
	Throw(err error) (any, error)
}

// Generator is the full capability set of a resumable frame.
type Generator interface {
	Iterator
	Sender
	Thrower
	Close() error
}

// Iterable is implemented by values that can produce a fresh Iterator.
type Iterable interface {
	Iter() Iterator
}

var (
	// ErrGeneratorExit is what a suspended frame receives from Yield when it is closed.
	ErrGeneratorExit = errors.New("yieldfrom: generator exit")
	// ErrIgnoredExit is returned by Close when a frame yields again after ErrGeneratorExit.
	ErrIgnoredExit = errors.New("yieldfrom: generator ignored exit")
	// ErrRunning is returned when a frame is resumed from inside its own body.
	ErrRunning = errors.New("yieldfrom: generator already executing")
	// ErrNotGenerator is returned by a driver whose outer generator is nil.
	ErrNotGenerator = errors.New("yieldfrom: wrapped function did not produce a generator")
)

// StopIteration is the exhaustion event of an iterator. Value is the result
// carried by the exhaustion, nil if there is none.
type StopIteration struct {
	Value any
}

func (s *StopIteration) Error() string {
	if s.Value == nil {
		return "yieldfrom: stop iteration"
	}
	return fmt.Sprintf("yieldfrom: stop iteration (%v)", s.Value)
}

// Exhausted reports whether err is an exhaustion event, and if so its result.
func Exhausted(err error) (result any, ok bool) {
	var stop *StopIteration
	if errors.As(err, &stop) {
		return stop.Value, true
	}
	return nil, false
}

func stopWith(value any) error {
	return &StopIteration{Value: value}
}

// returnSignal unwinds a frame body; the frame runner recovers it.
type returnSignal struct {
	value any
}

// exitIgnored unwinds a frame body that yielded after ErrGeneratorExit.
type exitIgnored struct{}

// Return ends the running frame, attaching value to its exhaustion.
// Execution does not continue past the call. Return accepts zero or one value.
//
// Return must be called on the goroutine running a frame body; anywhere else
// the panic it raises is not recovered.
func Return(value ...any) {
	switch len(value) {
	case 0:
		panic(&returnSignal{})
	case 1:
		panic(&returnSignal{value: value[0]})
	}
	panic(fmt.Sprintf("yieldfrom: Return takes at most one value, got %d", len(value)))
}
