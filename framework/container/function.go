package container

import (
	"fmt"
	"reflect"
)

// Function is a Go func described well enough for the container to resolve
// its parameters and invoke it.
type Function struct {
	name     string
	fn       reflect.Value
	params   []Param
	receiver bool
}

func newFunction(name string, fn any, receiver bool, owner string, specs []ParamSpec) *Function {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("container: %s must be a function, got %T", name, fn))
	}

	skip := 0
	if receiver {
		skip = 1
	}
	if v.Type().NumIn() < skip {
		panic(fmt.Sprintf("container: %s must take a receiver", name))
	}

	return &Function{
		name:     name,
		fn:       v,
		params:   buildParams(v.Type(), skip, owner, specs),
		receiver: receiver,
	}
}

func (f *Function) Name() string { return f.name }

// Params returns the declared parameters, receiver excluded.
func (f *Function) Params() []Param {
	out := make([]Param, len(f.params))
	copy(out, f.params)
	return out
}

// invoke calls the function with the resolved argument list. Arguments
// beyond the declared parameters are dropped unless the function is variadic.
func (f *Function) invoke(receiver any, args []any) (any, error) {
	t := f.fn.Type()
	in := make([]reflect.Value, 0, len(args)+1)

	if f.receiver {
		rv, err := coerce(receiver, t.In(0))
		if err != nil {
			return nil, errInvalidArgument("receiver", receiver, t.In(0).String())
		}
		in = append(in, rv)
	}

	variadic := len(f.params) > 0 && f.params[len(f.params)-1].Variadic
	fixed := len(f.params)
	if variadic {
		fixed--
	}

	for i, a := range args {
		switch {
		case i < fixed:
			p := f.params[i]
			v, err := coerce(a, p.goType)
			if err != nil {
				return nil, errInvalidArgument(p.Name, a, p.goType.String())
			}
			in = append(in, v)
		case variadic:
			p := f.params[len(f.params)-1]
			vs, err := spread(a, p.goType)
			if err != nil {
				return nil, errInvalidArgument(p.Name, a, p.goType.Elem().String())
			}
			in = append(in, vs...)
		}
	}

	return collect(f.name, f.fn.Call(in))
}

// spread accepts either one element of a variadic slice type or a whole slice.
func spread(a any, slice reflect.Type) ([]reflect.Value, error) {
	if a != nil && reflect.TypeOf(a).AssignableTo(slice) {
		sv := reflect.ValueOf(a)
		out := make([]reflect.Value, sv.Len())
		for i := range out {
			out[i] = sv.Index(i)
		}
		return out, nil
	}

	v, err := coerce(a, slice.Elem())
	if err != nil {
		return nil, err
	}
	return []reflect.Value{v}, nil
}

func coerce(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if convertible(v.Type(), t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	numeric := func(k reflect.Kind) bool {
		return k >= reflect.Int && k <= reflect.Float64
	}
	fk, tk := from.Kind(), to.Kind()
	return (numeric(fk) && numeric(tk)) || fk == tk
}

// collect maps Go results onto a single value. A trailing non-nil error
// becomes FactoryFailed; several values come back as []any.
func collect(name string, out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return nil, errFactoryFailed(name, err)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}

	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, nil
}
