package container

import (
	"fmt"
	"reflect"
	"sync"
)

// InvokeMethod is the method name used when a class or instance is called
// directly.
const InvokeMethod = "Invoke"

// Introspector supplies the type information the resolver consumes. Go has no
// runtime access to parameter names, so classes are described up front.
type Introspector interface {
	Class(name string) (*Class, bool)
	ClassOf(instance any) (*Class, bool)
}

// MethodInfo is a registered method of a class.
type MethodInfo struct {
	*Function
	Static bool
}

// Class describes a constructible (or abstract) type.
type Class struct {
	Name     string
	Parent   string
	Abstract bool

	typ     reflect.Type
	ctor    *Function
	methods map[string]*MethodInfo
}

func (c *Class) Instantiable() bool { return !c.Abstract }

// Constructor returns nil when the class is built from its zero value.
func (c *Class) Constructor() *Function { return c.ctor }

func (c *Class) Method(name string) (*MethodInfo, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Instantiate invokes the constructor with an already resolved argument list.
func (c *Class) Instantiate(args []any) (any, error) {
	if c.ctor == nil {
		if c.typ.Kind() == reflect.Ptr {
			return reflect.New(c.typ.Elem()).Interface(), nil
		}
		return reflect.Zero(c.typ).Interface(), nil
	}
	return c.ctor.invoke(nil, args)
}

// Types is the registry-backed Introspector.
type Types struct {
	mu      sync.RWMutex
	classes map[string]*Class
	byType  map[reflect.Type]string
}

func NewTypes() *Types {
	return &Types{
		classes: make(map[string]*Class),
		byType:  make(map[reflect.Type]string),
	}
}

func (t *Types) Class(name string) (*Class, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.classes[name]
	return c, ok
}

func (t *Types) ClassOf(instance any) (*Class, bool) {
	if instance == nil {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.byType[reflect.TypeOf(instance)]
	if !ok {
		return nil, false
	}
	return t.classes[name], true
}

// Names lists registered class names.
func (t *Types) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.classes))
	for name := range t.classes {
		out = append(out, name)
	}
	return out
}

// ClassBuilder registers a class and its members.
type ClassBuilder struct {
	types *Types
	class *Class
}

// Define registers T under KeyOf[T]. Interface types are abstract.
//
//	container.Define[*OuterService](types).
//	    Constructor(NewOuterService, container.Arg("inner"))
func Define[T any](t *Types) *ClassBuilder {
	return DefineNamed[T](t, KeyOf[T]())
}

// DefineNamed registers T under an explicit class name.
func DefineNamed[T any](t *Types, name string) *ClassBuilder {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	class := &Class{
		Name:     name,
		Abstract: typ.Kind() == reflect.Interface,
		typ:      typ,
		methods:  make(map[string]*MethodInfo),
	}

	t.mu.Lock()
	t.classes[name] = class
	if !class.Abstract {
		t.byType[typ] = name
	}
	t.mu.Unlock()

	return &ClassBuilder{types: t, class: class}
}

// Constructor sets the constructor. fn must return the class type, optionally
// followed by an error.
func (b *ClassBuilder) Constructor(fn any, specs ...ParamSpec) *ClassBuilder {
	f := newFunction(b.class.Name+".constructor", fn, false, b.class.Name, specs)
	ft := f.fn.Type()
	if ft.NumOut() == 0 || !ft.Out(0).AssignableTo(b.class.typ) {
		panic(fmt.Sprintf("container: constructor of %s must return %s", b.class.Name, b.class.typ))
	}

	b.types.mu.Lock()
	b.class.ctor = f
	b.types.mu.Unlock()
	return b
}

// Method registers an instance method from a method expression such as
// (*Service).Value.
func (b *ClassBuilder) Method(name string, fn any, specs ...ParamSpec) *ClassBuilder {
	f := newFunction(b.class.Name+"::"+name, fn, true, b.class.Name, specs)
	if !b.class.typ.AssignableTo(f.fn.Type().In(0)) {
		panic(fmt.Sprintf("container: %s receiver must accept %s", f.name, b.class.typ))
	}
	return b.add(name, &MethodInfo{Function: f})
}

// Static registers a method that needs no receiver.
func (b *ClassBuilder) Static(name string, fn any, specs ...ParamSpec) *ClassBuilder {
	f := newFunction(b.class.Name+"::"+name, fn, false, b.class.Name, specs)
	return b.add(name, &MethodInfo{Function: f, Static: true})
}

// Invokable registers the method used when the class itself is called.
func (b *ClassBuilder) Invokable(fn any, specs ...ParamSpec) *ClassBuilder {
	return b.Method(InvokeMethod, fn, specs...)
}

func (b *ClassBuilder) Extends(parent string) *ClassBuilder {
	b.types.mu.Lock()
	b.class.Parent = parent
	b.types.mu.Unlock()
	return b
}

func (b *ClassBuilder) Abstract() *ClassBuilder {
	b.types.mu.Lock()
	b.class.Abstract = true
	b.types.mu.Unlock()
	return b
}

// Name returns the registered class name.
func (b *ClassBuilder) Name() string { return b.class.Name }

func (b *ClassBuilder) add(name string, m *MethodInfo) *ClassBuilder {
	b.types.mu.Lock()
	b.class.methods[name] = m
	b.types.mu.Unlock()
	return b
}
