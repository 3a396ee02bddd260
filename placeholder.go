package di

import (
	"fmt"
	"reflect"
)

// Placeholder is the shared stand-in object built for a definition
// wrapped with GoroutineLocalize in EnsureLocality mode.
//
// A Placeholder holds no per-goroutine state and is safe for concurrent
// use: every operation resolves the instance belonging to the calling
// goroutine and forwards to it. It can be stored inside other
// long-lived objects and used from any goroutine.
type Placeholder struct {
	name  string
	is    []reflect.Type
	slot  *goroutineSlot
	build func() (interface{}, error)
}

// Name returns the name of the definition the placeholder stands for.
func (p *Placeholder) Name() string {
	return p.name
}

// Capabilities returns the capability types declared
// by the wrapped definition.
func (p *Placeholder) Capabilities() []reflect.Type {
	out := make([]reflect.Type, len(p.is))
	copy(out, p.is)
	return out
}

// Resolve returns the instance belonging to the calling goroutine.
// The first call from a goroutine builds the instance and stores it in
// the goroutine slot; the following calls return the stored instance.
// If the build fails, the slot is left empty and a later call
// will try again.
func (p *Placeholder) Resolve() (interface{}, error) {
	if obj, ok := p.slot.get(); ok {
		return obj, nil
	}

	obj, err := p.build()
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf(obj)
	for _, typ := range p.is {
		if !satisfiesType(t, typ) {
			return nil, fmt.Errorf("could not resolve `%s`: %s does not satisfy %s", p.name, typeName(t), typ)
		}
	}

	p.slot.set(obj)

	return obj, nil
}

// Call invokes the named method on the calling goroutine's instance
// and returns its results. If the last result of the method is an
// error, it is stripped from the results and returned as the error of
// Call, unchanged, so the caller observes the failure it would have
// observed without the placeholder.
//
// A panic raised by the real method is not recovered:
// it propagates to the caller as itself.
func (p *Placeholder) Call(method string, args ...interface{}) ([]interface{}, error) {
	obj, err := p.Resolve()
	if err != nil {
		return nil, err
	}

	m := reflect.ValueOf(obj).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf(
			"could not call `%s.%s`: %s has no method %s",
			p.name, method, typeName(reflect.TypeOf(obj)), method,
		)
	}

	in, err := p.callArguments(method, m.Type(), args)
	if err != nil {
		return nil, err
	}

	return splitTrailingError(m.Call(in))
}

func (p *Placeholder) callArguments(method string, mt reflect.Type, args []interface{}) ([]reflect.Value, error) {
	numIn := mt.NumIn()

	if mt.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf(
				"could not call `%s.%s` with %d arguments, the method takes at least %d",
				p.name, method, len(args), numIn-1,
			)
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf(
			"could not call `%s.%s` with %d arguments, the method takes %d",
			p.name, method, len(args), numIn,
		)
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		var pt reflect.Type
		if mt.IsVariadic() && i >= numIn-1 {
			pt = mt.In(numIn - 1).Elem()
		} else {
			pt = mt.In(i)
		}

		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}

		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(pt) {
			// Conversions are only applied between numeric kinds.
			// Anything wider would let Go's lossy conversions through,
			// like an int turning into a one-rune string.
			if !numericKind(v.Kind()) || !numericKind(pt.Kind()) || !v.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf(
					"could not call `%s.%s`: argument %d is a %s, not assignable to %s",
					p.name, method, i, v.Type(), pt,
				)
			}
			v = v.Convert(pt)
		}

		in[i] = v
	}

	return in, nil
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func splitTrailingError(out []reflect.Value) ([]interface{}, error) {
	if n := len(out); n > 0 && out[n-1].Type().Implements(errorType) {
		results := valuesToInterfaces(out[:n-1])
		if out[n-1].IsNil() {
			return results, nil
		}
		return results, out[n-1].Interface().(error)
	}

	return valuesToInterfaces(out), nil
}

func valuesToInterfaces(values []reflect.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}

// Proxify fills dst, a pointer to a struct of exported func fields,
// so that each field forwards to the identically named method of the
// calling goroutine's instance. The filled struct is the statically
// typed surface of the placeholder: it can be stored anywhere
// and used from any goroutine.
//
// The signature of a func field must match the signature of the method
// it forwards to. A forwarder panics with the resolution error if the
// goroutine instance can not be built, since a plain method call has
// no error channel of its own. A panic raised by the real method
// propagates to the caller as itself.
func (p *Placeholder) Proxify(dst interface{}) error {
	v := reflect.ValueOf(dst)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("could not proxify `%s`: the destination must be a non-nil pointer to a struct of func fields", p.name)
	}

	s := v.Elem()
	t := s.Type()
	funcs := 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type.Kind() != reflect.Func {
			continue
		}

		funcs++
		method := field.Name
		ft := field.Type

		s.Field(i).Set(reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
			return p.forward(method, ft, args)
		}))
	}

	if funcs == 0 {
		return fmt.Errorf("could not proxify `%s`: %s does not declare any exported func field", p.name, t)
	}

	return nil
}

func (p *Placeholder) forward(method string, ft reflect.Type, args []reflect.Value) []reflect.Value {
	obj, err := p.Resolve()
	if err != nil {
		panic(err)
	}

	m := reflect.ValueOf(obj).MethodByName(method)
	if !m.IsValid() {
		panic(fmt.Errorf(
			"could not forward `%s.%s`: %s has no method %s",
			p.name, method, typeName(reflect.TypeOf(obj)), method,
		))
	}

	if ft.IsVariadic() {
		return m.CallSlice(args)
	}

	return m.Call(args)
}

// Equivalent returns true if other is the instance the placeholder
// resolves to for the calling goroutine. The comparison is made
// against the resolved instance, never against the placeholder itself,
// so equality keeps the semantics of the underlying component.
func (p *Placeholder) Equivalent(other interface{}) bool {
	obj, err := p.Resolve()
	if err != nil {
		return false
	}

	if obj == nil || other == nil {
		return obj == other
	}

	if !reflect.TypeOf(obj).Comparable() || !reflect.TypeOf(other).Comparable() {
		return reflect.DeepEqual(obj, other)
	}

	return obj == other
}

// ResolveAs resolves the calling goroutine's instance
// of the placeholder and returns it as a T.
func ResolveAs[T any](p *Placeholder) (T, error) {
	var zero T

	obj, err := p.Resolve()
	if err != nil {
		return zero, err
	}

	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf(
			"could not resolve `%s` as %s: the instance is a %s",
			p.name, InterfaceOf[T](), typeName(reflect.TypeOf(obj)),
		)
	}

	return typed, nil
}
