package yieldfrom

import (
	"errors"
	"io"
)

// State is the delegation state of a Driver.
type State int

const (
	OuterRunning State = iota
	Delegating
	Finished
)

func (s State) String() string {
	switch s {
	case OuterRunning:
		return "OuterRunning"
	case Delegating:
		return "Delegating"
	case Finished:
		return "Finished"
	}
	return "State(?)"
}

// Driver wraps an outer generator and implements delegation: when the outer
// frame yields a Marker, the driver drives the marker's iterator in its place
// until the iterator is exhausted, then resumes the outer frame with the
// iterator's result.
//
// Sent values and thrown errors go to the nested iterator while one is
// active. An error the nested iterator does not absorb is thrown into the
// outer frame at the delegation point. A Driver is itself a Generator, so it
// can be the target of another delegation.
type Driver struct {
	outer   Generator
	nested  Iterator
	state   State
	running bool
}

func NewDriver(outer Generator) *Driver {
	return &Driver{outer: outer}
}

// NewDelegating creates a frame from body and drives it.
func NewDelegating(body Func) *Driver {
	return NewDriver(New(body))
}

func (d *Driver) Next() (any, error) {
	return d.resume(resumption{})
}

func (d *Driver) Send(value any) (any, error) {
	return d.resume(resumption{value: value})
}

func (d *Driver) Throw(err error) (any, error) {
	if err == nil {
		panic("yieldfrom: Throw with nil error")
	}
	return d.resume(resumption{err: err})
}

// Close closes the active nested iterator, if it can be closed, and then the
// outer generator.
func (d *Driver) Close() error {
	if d.running {
		return ErrRunning
	}
	if d.state == Finished {
		return nil
	}
	d.running = true
	defer func() { d.running = false }()

	var nestedErr, outerErr error
	if c, ok := d.nested.(io.Closer); ok {
		nestedErr = c.Close()
	}
	d.nested = nil
	d.state = Finished
	if d.outer != nil {
		outerErr = d.outer.Close()
	}

	switch {
	case nestedErr == nil:
		return outerErr
	case outerErr == nil:
		return nestedErr
	}
	return errors.Join(nestedErr, outerErr)
}

func (d *Driver) State() State { return d.state }

// Active returns the nested iterator being driven, or nil.
func (d *Driver) Active() Iterator { return d.nested }

// Depth counts the delegations active below d, following nested drivers.
func (d *Driver) Depth() int {
	depth := 0
	for d != nil && d.state == Delegating {
		depth++
		d, _ = d.nested.(*Driver)
	}
	return depth
}

func (d *Driver) resume(in resumption) (any, error) {
	if d.running {
		return nil, ErrRunning
	}
	if d.state == Finished {
		if in.err != nil {
			return nil, in.err
		}
		return nil, stopWith(nil)
	}
	if d.outer == nil {
		d.state = Finished
		return nil, ErrNotGenerator
	}
	d.running = true
	defer func() { d.running = false }()

	for {
		if d.state == Delegating {
			value, err := drive(d.nested, in)
			if err == nil {
				return value, nil
			}
			d.nested = nil
			d.state = OuterRunning
			if result, ok := Exhausted(err); ok {
				in = resumption{value: result}
			} else {
				in = resumption{err: err}
			}
			continue
		}

		value, err := drive(d.outer, in)
		if err != nil {
			if _, ok := Exhausted(err); ok {
				d.state = Finished
			}
			return nil, err
		}
		m, ok := value.(*Marker)
		if !ok {
			return value, nil
		}
		d.nested = m.Iterator()
		d.state = Delegating
		in = resumption{}
	}
}

// drive resumes it with in, using the capabilities it has: a thrown error
// goes to Throw, or comes straight back when it cannot be thrown; a non-nil
// value goes to Send when possible; everything else advances with Next.
func drive(it Iterator, in resumption) (any, error) {
	switch {
	case in.err != nil:
		if t, ok := it.(Thrower); ok {
			return t.Throw(in.err)
		}
		return nil, in.err
	case in.value != nil:
		if s, ok := it.(Sender); ok {
			return s.Send(in.value)
		}
	}
	return it.Next()
}
