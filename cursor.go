package yieldfrom

// Cursor reads an Iterator with the Next/Value/Error loop:
//
//	c := NewCursor(gen)
//	for c.Next() {
//		use(c.Value())
//	}
//	if c.Error() != nil { ... }
type Cursor struct {
	it     Iterator
	value  any
	result any
	err    error
	done   bool
}

func NewCursor(it Iterator) *Cursor {
	return &Cursor{it: it}
}

func (c *Cursor) Next() bool {
	if c.done {
		return false
	}
	value, err := c.it.Next()
	if err != nil {
		c.done = true
		c.value = nil
		if result, ok := Exhausted(err); ok {
			c.result = result
		} else {
			c.err = err
		}
		return false
	}
	c.value = value
	return true
}

func (c *Cursor) Value() any {
	return c.value
}

// Error returns the error that ended iteration, nil on plain exhaustion.
func (c *Cursor) Error() error {
	return c.err
}

// Result returns the result carried by the exhaustion.
func (c *Cursor) Result() any {
	return c.result
}

// Collect drains it, returning every value it yielded and the result of its
// exhaustion, or the error that ended it early.
func Collect(it Iterator) (values []any, result any, err error) {
	c := NewCursor(it)
	for c.Next() {
		values = append(values, c.Value())
	}
	return values, c.Result(), c.Error()
}
