package container

import (
	"context"
	"sync"
)

type scopeKey struct{ owner *Container }

// scope caches scoped aliases, and shared aliases built from them, for one
// unit of work such as an HTTP request.
type scope struct {
	mu        sync.Mutex
	instances map[string]any
	order     []string
	ended     bool
}

// BeginScope returns a context carrying a new scope of c and the function
// that ends it. Use with that context caches scoped aliases in the scope
// instead of the container, together with every shared alias built from
// them, so concurrent scopes never see each other's instances. Ending the
// scope drops its instances and reports them to observers as evicted.
//
//	// Laravel Octane: one scope per request
//	ctx, end := c.BeginScope(req.Context())
//	defer end()
func (c *Container) BeginScope(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &scope{instances: make(map[string]any)}

	var once sync.Once
	end := func() {
		once.Do(func() { c.notifyEvicted(s.end()) })
	}
	return context.WithValue(ctx, scopeKey{owner: c}, s), end
}

// InScope reports whether ctx carries an open scope of c.
func (c *Container) InScope(ctx context.Context) bool {
	s := c.scopeOf(ctx)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

func (c *Container) scopeOf(ctx context.Context) *scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{owner: c}).(*scope)
	return s
}

func (s *scope) get(alias string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.instances[alias]
	return v, ok
}

// store caches v unless another value won the race. An ended scope caches
// nothing.
func (s *scope) store(alias string, v any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return v
	}
	if cur, ok := s.instances[alias]; ok {
		return cur
	}
	s.instances[alias] = v
	s.order = append(s.order, alias)
	return v
}

func (s *scope) end() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.instances = nil
	return s.order
}
