package misuse

import "github.com/tmr232/yieldfrom"

func plainLiteral() yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		_, err := y.YieldFrom([]int{1, 2}) // misuse
		return nil, err
	})
}

func markerVariable() yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		marker := yieldfrom.From("abc")
		_, err := y.Yield(marker) // misuse
		return nil, err
	})
}

func namedBody(y *yieldfrom.Yielder) (any, error) {
	return y.YieldFrom(plainYields()) // misuse
}

func namedBodyUnwrapped() yieldfrom.Generator {
	return yieldfrom.New(namedBody)
}

func delegating() yieldfrom.Generator {
	return yieldfrom.NewDelegating(func(y *yieldfrom.Yielder) (any, error) {
		return y.YieldFrom([]int{1, 2})
	})
}

func driven() yieldfrom.Generator {
	return yieldfrom.NewDriver(yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		return y.YieldFrom(plainYields())
	}))
}

func drivenLater() yieldfrom.Generator {
	frame := yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		return y.Yield(yieldfrom.From([]string{"a"}))
	})
	return yieldfrom.NewDriver(frame)
}

var wrappedLiteral = yieldfrom.Wrap(func(n int) yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		return y.YieldFrom(make([]int, n))
	})
})

func wrappedByName(values []int) yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		return y.YieldFrom(values)
	})
}

var wrapped = yieldfrom.Wrap(wrappedByName)

func drivenByCall() yieldfrom.Generator {
	return yieldfrom.NewDriver(delegatingHelper())
}

func delegatingHelper() yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		return y.YieldFrom(wrapped([]int{3}))
	})
}

func plainYields() yieldfrom.Generator {
	return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) {
		for i := 0; i < 3; i++ {
			if _, err := y.Yield(i); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

var (
	_ = plainLiteral
	_ = markerVariable
	_ = namedBodyUnwrapped
	_ = delegating
	_ = driven
	_ = drivenLater
	_ = wrappedLiteral
	_ = drivenByCall
)
