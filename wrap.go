package yieldfrom

import (
	"fmt"
	"reflect"
)

var (
	generatorType = reflect.TypeFor[Generator]()
	driverType    = reflect.TypeFor[*Driver]()
)

// Wrap takes a function producing a generator and returns a function with
// the same signature whose generators are driven by a Driver, so that
// markers yielded by the produced frames are delegated.
//
//	var gen = yieldfrom.Wrap(func(n int) yieldfrom.Generator {
//		return yieldfrom.New(func(y *yieldfrom.Yielder) (any, error) { ... })
//	})
//
// fn must be a function with a single result whose type implements
// Generator and can hold a *Driver; Wrap panics otherwise. When fn returns
// nil, the driver fails its first resumption with ErrNotGenerator.
func Wrap[F any](fn F) F {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		panic(fmt.Sprintf("yieldfrom: Wrap needs a non-nil function, got %T", fn))
	}
	ft := fv.Type()
	if ft.NumOut() != 1 {
		panic(fmt.Sprintf("yieldfrom: Wrap needs a function with a single result, got %s", ft))
	}
	out := ft.Out(0)
	if !out.Implements(generatorType) || !driverType.AssignableTo(out) {
		panic(fmt.Sprintf("yieldfrom: %s cannot carry a driven generator", out))
	}

	wrapped := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		var results []reflect.Value
		if ft.IsVariadic() {
			results = fv.CallSlice(args)
		} else {
			results = fv.Call(args)
		}
		var outer Generator
		if r := results[0].Interface(); !isNil(r) {
			outer = r.(Generator)
		}
		driven := reflect.New(out).Elem()
		driven.Set(reflect.ValueOf(NewDriver(outer)))
		return []reflect.Value{driven}
	})
	return wrapped.Interface().(F)
}
