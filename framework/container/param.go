package container

import (
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Aliases a parameter may declare to name its own class or the parent class.
const (
	SelfAlias   = "self"
	ParentAlias = "parent"
)

// Param describes one declared parameter of a constructor, method or
// function as the resolver sees it.
type Param struct {
	Name       string
	Type       string // declared type alias, empty when untyped
	Builtin    bool
	Nullable   bool
	HasDefault bool
	Default    any
	Variadic   bool
	Context    bool
	Markers    []Marker
	Owner      string // declaring class, empty for free functions

	goType reflect.Type
}

// ParamSpec completes what reflection cannot see about a Go parameter: its
// name, default, nullability and contextual markers.
type ParamSpec struct {
	name       string
	alias      string
	nullable   bool
	hasDefault bool
	def        any
	markers    []Marker
}

// Arg starts a parameter spec.
//
//	container.Define[*ArgumentService](types).Constructor(NewArgumentService,
//	    container.Arg("a").Default(1),
//	    container.Arg("b").Default(2),
//	)
func Arg(name string) ParamSpec {
	return ParamSpec{name: name}
}

func (s ParamSpec) Default(v any) ParamSpec {
	s.hasDefault = true
	s.def = v
	return s
}

func (s ParamSpec) Nullable() ParamSpec {
	s.nullable = true
	return s
}

// As overrides the declared type alias. SelfAlias and ParentAlias are
// resolved against the declaring class.
func (s ParamSpec) As(alias string) ParamSpec {
	s.alias = alias
	return s
}

func (s ParamSpec) Marked(m Marker) ParamSpec {
	s.markers = append(append([]Marker(nil), s.markers...), m)
	return s
}

func buildParams(fnType reflect.Type, skip int, owner string, specs []ParamSpec) []Param {
	if n := fnType.NumIn() - skip; n != len(specs) {
		panic(fmt.Sprintf("container: %s has %d parameters, %d specs given", fnType, n, len(specs)))
	}

	params := make([]Param, 0, len(specs))
	for i, spec := range specs {
		t := fnType.In(skip + i)
		variadic := fnType.IsVariadic() && skip+i == fnType.NumIn()-1
		elem := t
		if variadic {
			elem = t.Elem()
		}

		p := Param{
			Name:       spec.name,
			Nullable:   spec.nullable,
			HasDefault: spec.hasDefault,
			Default:    spec.def,
			Variadic:   variadic,
			Context:    elem == contextType,
			Markers:    spec.markers,
			Owner:      owner,
			goType:     t,
		}

		switch {
		case spec.alias != "":
			p.Type = spec.alias
		case p.Context:
			p.Type = TypeKeyOf(elem)
			p.Builtin = true
		default:
			p.Type = TypeKeyOf(elem)
			p.Builtin = !isUserType(elem)
		}
		params = append(params, p)
	}
	return params
}

// isUserType reports whether t names a struct or interface declared in a
// package, which makes it resolvable through the container.
func isUserType(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return false
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Interface
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// alias when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	return TypeKeyOf(reflect.TypeOf(v))
}

// KeyOf is TypeKey for a type parameter, including interface types.
func KeyOf[T any]() string {
	return TypeKeyOf(reflect.TypeOf((*T)(nil)).Elem())
}

func TypeKeyOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
