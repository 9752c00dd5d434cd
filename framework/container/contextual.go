package container

import "context"

// Marker is attached to a parameter with ParamSpec.Marked and takes over its
// resolution regardless of the parameter's declared type.
type Marker interface {
	Resolve(ctx context.Context, c *Container) (any, error)
}

// Identified lets a marker choose the identity handlers are bound to.
// Without it the identity is the marker's TypeKey.
type Identified interface {
	MarkerID() string
}

// AttributeHandler replaces a marker's own Resolve for every marker sharing
// its identity.
type AttributeHandler func(ctx context.Context, marker Marker, c *Container) (any, error)

func MarkerID(m Marker) string {
	if id, ok := m.(Identified); ok {
		return id.MarkerID()
	}
	return TypeKey(m)
}

// BindMarker binds a typed handler for markers of type M.
//
//	container.BindMarker(c, func(ctx context.Context, m ItemContext, c *container.Container) (any, error) {
//	    return NewItem("other"), nil
//	})
func BindMarker[M Marker](c *Container, handler func(ctx context.Context, m M, c *Container) (any, error)) *Container {
	var zero M
	return c.BindAttribute(MarkerID(zero), func(ctx context.Context, marker Marker, c *Container) (any, error) {
		m, ok := marker.(M)
		if !ok {
			return nil, errTypeMismatch(MarkerID(marker), marker, KeyOf[M]())
		}
		return handler(ctx, m, c)
	})
}

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	c.When("PhotoController").Needs("Filesystem").Give(container.Func(NewS3))
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// Needs specifies which alias the concrete class depends on.
func (b *ContextualBuilder) Needs(alias string) *ContextualBuilder {
	b.needs = alias
	return b
}

// Give provides the factory used when the concrete class resolves the
// specified alias through a typed parameter.
func (b *ContextualBuilder) Give(factory Factory) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.contextual[b.concrete]; !ok {
		b.container.contextual[b.concrete] = make(map[string]Factory)
	}
	b.container.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is already built.
//
//	c.When("PhotoController").Needs("storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(Func(func() any { return value }))
}
