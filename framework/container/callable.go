package container

import (
	"fmt"
	"strings"
)

// Factory is what an alias can be bound to: a Concrete class name or any
// Callable.
type Factory interface {
	factory()
}

// Concrete names a class to build.
type Concrete string

func (Concrete) factory() {}

// Callable is one of the call shapes the container can invoke: a function,
// a method on a class or instance, or an invokable class or instance.
type Callable interface {
	Factory
	callable()
}

type funcCall struct {
	fn *Function
}

type methodCall struct {
	target any // class name or instance
	method string
}

func (funcCall) factory()    {}
func (funcCall) callable()   {}
func (methodCall) factory()  {}
func (methodCall) callable() {}

func (m methodCall) String() string {
	if name, ok := m.target.(string); ok {
		return name + "::" + m.method
	}
	return fmt.Sprintf("%T::%s", m.target, m.method)
}

// Func wraps a Go function. specs name its parameters in order.
//
//	container.Func(func(a, b int) int { return a + b }, container.Arg("a"), container.Arg("b"))
func Func(fn any, specs ...ParamSpec) Callable {
	return funcCall{fn: newFunction(fmt.Sprintf("%T", fn), fn, false, "", specs)}
}

// Method calls method on target, which is either a class name (resolved
// with Use unless the method is static) or an instance.
func Method(target any, method string) Callable {
	return methodCall{target: target, method: method}
}

// Invoker calls the Invoke method of a class name or instance.
func Invoker(target any) Callable {
	return Method(target, InvokeMethod)
}

// ParseCallable accepts "Class::method" or a bare invokable class name.
func ParseCallable(s string) Callable {
	if class, method, ok := strings.Cut(s, "::"); ok {
		return Method(class, method)
	}
	return Invoker(s)
}
