package container

import (
	"context"

	"go.uber.org/zap"
)

// ── Resolution chain ──────────────────────────────────────────────────────────

type frameKey struct{}

// frame is one alias under construction. Frames travel down the context so
// nested factories see the chain that led to them.
type frame struct {
	owner  *Container
	alias  string
	parent *frame
	depth  int
}

func (c *Container) enter(ctx context.Context, alias string) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	parent, _ := ctx.Value(frameKey{}).(*frame)

	depth := 1
	for f := parent; f != nil; f = f.parent {
		if f.owner != c {
			continue
		}
		if f.alias == alias {
			return nil, errCircularDependency(chainOf(c, parent, alias))
		}
		if depth == 1 {
			depth = f.depth + 1
		}
	}
	if depth > c.maxDepth {
		return nil, errDepthExceeded(alias, c.maxDepth)
	}

	return context.WithValue(ctx, frameKey{}, &frame{owner: c, alias: alias, parent: parent, depth: depth}), nil
}

// chainOf lists the aliases of c under construction, outermost first, ending
// with alias.
func chainOf(c *Container, f *frame, alias string) []string {
	chain := []string{alias}
	for ; f != nil; f = f.parent {
		if f.owner == c {
			chain = append(chain, f.alias)
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Chain returns the aliases under construction in ctx, outermost first.
func Chain(ctx context.Context) []string {
	f, _ := ctx.Value(frameKey{}).(*frame)
	var out []string
	for ; f != nil; f = f.parent {
		out = append([]string{f.alias}, out...)
	}
	return out
}

// ── Parameter resolution ──────────────────────────────────────────────────────

// resolve produces the argument list for params. Each parameter takes, in
// order: an explicit argument by name, its first marker, the context, a
// container-resolved instance of its type, its default, nil when nullable.
// Variadic parameters without a value are skipped. Unconsumed explicit
// arguments are appended at the end.
//
// Cached values taken from the container are appended to deps when non-nil.
func (c *Container) resolve(ctx context.Context, params []Param, args Arguments, deps *[]dependency) ([]any, error) {
	pool := args.pool()
	values := make([]any, 0, len(params)+args.Len())

	for _, p := range params {
		if v, ok := pool.take(p.Name); ok {
			values = append(values, v)
			continue
		}

		if len(p.Markers) > 0 {
			v, err := c.resolveMarker(ctx, p.Markers[0])
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			continue
		}

		if p.Context {
			values = append(values, ctx)
			continue
		}

		var cause error
		if p.Type != "" && !p.Builtin {
			v, dep, err := c.resolveType(ctx, p)
			if err == nil {
				if dep != nil && deps != nil {
					*deps = append(*deps, *dep)
				}
				values = append(values, v)
				continue
			}
			if fatal(err) {
				return nil, err
			}
			cause = err
			c.log.Debug("falling back for parameter",
				zap.String("param", p.Name),
				zap.String("type", p.Type),
				zap.Error(err),
			)
		}

		switch {
		case p.HasDefault:
			values = append(values, p.Default)
		case p.Nullable:
			values = append(values, nil)
		case p.Variadic:
		default:
			return nil, errUnresolvedDependency(p.Name, cause)
		}
	}

	return append(values, pool.leftovers()...), nil
}

func (c *Container) resolveMarker(ctx context.Context, m Marker) (any, error) {
	c.mu.RLock()
	handler, ok := c.attributes[MarkerID(m)]
	c.mu.RUnlock()

	if ok {
		return handler(ctx, m, c)
	}
	return m.Resolve(ctx, c)
}

func (c *Container) resolveType(ctx context.Context, p Param) (any, *dependency, error) {
	name := p.Type
	switch name {
	case SelfAlias:
		if p.Owner == "" {
			return nil, nil, errInvalidClass(name)
		}
		name = p.Owner
	case ParentAlias:
		class, ok := c.types.Class(p.Owner)
		if !ok || class.Parent == "" {
			return nil, nil, errInvalidClass(name)
		}
		name = class.Parent
	}

	if f, ok := c.contextualFor(p.Owner, name); ok {
		v, err := c.produce(ctx, f)
		return v, nil, err
	}

	if p.Owner != "" && name == p.Owner {
		if !p.Nullable {
			return nil, nil, errSelfDependency(name)
		}
		return nil, nil, nil
	}

	return c.use(ctx, name, Arguments{})
}

func (c *Container) contextualFor(owner, alias string) (Factory, bool) {
	if owner == "" {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.contextual[owner][alias]
	return f, ok
}

// produce runs a contextual factory. Contextual values are never cached.
func (c *Container) produce(ctx context.Context, f Factory) (any, error) {
	switch f := f.(type) {
	case Concrete:
		return c.BuildWith(ctx, string(f), Arguments{})
	case Callable:
		return c.call(ctx, f, Arguments{}, nil)
	}
	return nil, errInvalidCallable("unsupported contextual factory")
}
