package container

import "fmt"

type argument struct {
	name  string
	value any
}

// Arguments is an ordered set of explicitly supplied arguments. Named entries
// are matched to parameters by name; anything left over, including unnamed
// entries added with Append, is passed positionally after the declared
// parameters in the order it was added.
//
//	c.BuildWith(ctx, "ArgumentService", container.Args("b", 5))
type Arguments struct {
	items []argument
}

// Args builds Arguments from name/value pairs. It panics on an odd count or a
// non-string name, both of which are programming errors.
func Args(pairs ...any) Arguments {
	if len(pairs)%2 != 0 {
		panic("container: Args requires name/value pairs")
	}

	a := Arguments{items: make([]argument, 0, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("container: Args name at position %d is %T, want string", i, pairs[i]))
		}
		a = a.With(name, pairs[i+1])
	}
	return a
}

// With returns a copy of a with name set to value. An existing entry keeps its
// position.
func (a Arguments) With(name string, value any) Arguments {
	items := make([]argument, len(a.items), len(a.items)+1)
	copy(items, a.items)

	for i := range items {
		if items[i].name == name && name != "" {
			items[i].value = value
			return Arguments{items: items}
		}
	}
	return Arguments{items: append(items, argument{name: name, value: value})}
}

// Append returns a copy of a with unnamed positional values added.
func (a Arguments) Append(values ...any) Arguments {
	items := make([]argument, len(a.items), len(a.items)+len(values))
	copy(items, a.items)
	for _, v := range values {
		items = append(items, argument{value: v})
	}
	return Arguments{items: items}
}

// Len returns the number of entries, named and positional.
func (a Arguments) Len() int { return len(a.items) }

// Get returns the first entry named name. Positional entries never match.
func (a Arguments) Get(name string) (any, bool) {
	for _, it := range a.items {
		if it.name == name && name != "" {
			return it.value, true
		}
	}
	return nil, false
}

// pool tracks which entries a single resolution pass has consumed.
type pool struct {
	items    []argument
	consumed []bool
}

func (a Arguments) pool() *pool {
	return &pool{items: a.items, consumed: make([]bool, len(a.items))}
}

func (p *pool) take(name string) (any, bool) {
	for i, it := range p.items {
		if !p.consumed[i] && it.name == name && name != "" {
			p.consumed[i] = true
			return it.value, true
		}
	}
	return nil, false
}

func (p *pool) leftovers() []any {
	var out []any
	for i, it := range p.items {
		if !p.consumed[i] {
			out = append(out, it.value)
		}
	}
	return out
}
