package container

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// binding holds a registered factory and whether its instance is shared.
type binding struct {
	factory Factory
	shared  bool
}

// entry is a cached instance. gen changes every time the alias is cached.
type entry struct {
	value any
	gen   uint64
}

// dependency records that a resolved value was taken from the cache.
type dependency struct {
	alias string
	gen   uint64
	local bool // cached in a scope rather than the container
}

// Loader registers bindings on demand for a deferred alias.
type Loader func(ctx context.Context, c *Container) error

// Extender decorates a resolved instance.
type Extender func(instance any, c *Container) any

// deferredLoad runs its loader once; concurrent users of the alias wait for it.
type deferredLoad struct {
	load Loader
	once sync.Once
	err  error
}

type loadingKey struct{ d *deferredLoad }

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container. Bindings map aliases to factories; shared
// (singleton or scoped) aliases are cached after the first Use, and the
// dependency graph evicts cached dependents when a cached instance goes away.
//
// All methods are safe for concurrent use. Construction runs outside the
// lock, so factories may call back into the container.
type Container struct {
	mu sync.RWMutex

	id string

	// alias → binding
	bindings map[string]*binding

	// alternative name → alias
	aliases map[string]string

	// alias → cached shared instance
	instances map[string]entry

	// aliases evicted by ClearScoped
	scoped map[string]struct{}

	// cached dependency → cached dependents
	deps *graph

	// marker identity → handler
	attributes map[string]AttributeHandler

	// contextual: when[concrete][alias] = factory
	contextual map[string]map[string]Factory

	// tag → []alias
	tags map[string][]string

	// alias → loader for deferred providers
	deferred map[string]*deferredLoad

	// alias → decorators applied after every build
	extenders map[string][]Extender

	// alias → callbacks fired when a bound alias is replaced
	rebound map[string][]func(any)

	afterResolving []func(string, any)
	observers      []Observer

	gen           uint64
	types         Introspector
	log           *zap.Logger
	cascadeRebind bool
	maxDepth      int
}

// New creates a container bound to itself under "container" and under its
// own type key.
func New(opts ...Option) *Container {
	c := &Container{
		id:            uuid.NewString(),
		types:         NewTypes(),
		log:           zap.NewNop(),
		cascadeRebind: true,
		maxDepth:      defaultMaxDepth,
	}
	c.reset()

	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("container", c.id))

	c.bindSelf()
	return c
}

func (c *Container) reset() {
	c.bindings = make(map[string]*binding)
	c.aliases = make(map[string]string)
	c.instances = make(map[string]entry)
	c.scoped = make(map[string]struct{})
	c.deps = newGraph()
	c.attributes = make(map[string]AttributeHandler)
	c.contextual = make(map[string]map[string]Factory)
	c.tags = make(map[string][]string)
	c.deferred = make(map[string]*deferredLoad)
	c.extenders = make(map[string][]Extender)
	c.rebound = make(map[string][]func(any))
}

func (c *Container) bindSelf() {
	c.Instance("container", c)
	c.Instance(KeyOf[Container](), c)
}

// ID identifies the container in logs and diagnostics.
func (c *Container) ID() string { return c.id }

// Types returns the registry-backed introspector, or nil when a custom
// Introspector is in use.
func (c *Container) Types() *Types {
	t, _ := c.types.(*Types)
	return t
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Use builds a new instance. A nil
// factory binds the alias to itself as a class name.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind("UserRepository", container.Concrete(container.KeyOf[*EloquentUserRepository]()))
func (c *Container) Bind(alias string, factory Factory) *Container {
	return c.bind(alias, factory, false, false)
}

// Singleton registers a factory whose result is cached after first Use.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
//	c.Singleton("cache", container.Func(NewRedisCache, container.Arg("cfg").As("config")))
func (c *Container) Singleton(alias string, factory Factory) *Container {
	return c.bind(alias, factory, true, false)
}

// Scoped registers an alias cached once per scope (see BeginScope). Used
// outside a scope it is cached in the container until ClearScoped.
func (c *Container) Scoped(alias string, factory Factory) *Container {
	return c.bind(alias, factory, true, true)
}

func (c *Container) bind(alias string, factory Factory, shared, scoped bool) *Container {
	if factory == nil {
		factory = Concrete(alias)
	}

	c.mu.Lock()
	alias = c.canonical(alias)
	rebound := c.replaces(alias)
	evicted := c.evict(alias, c.cascadeRebind)
	delete(c.scoped, alias)
	delete(c.deferred, alias)
	c.bindings[alias] = &binding{factory: factory, shared: shared}
	if scoped {
		c.scoped[alias] = struct{}{}
	}
	c.mu.Unlock()

	c.log.Debug("alias bound",
		zap.String("alias", alias),
		zap.Bool("shared", shared),
		zap.Bool("scoped", scoped),
	)
	c.notifyEvicted(evicted)
	if rebound {
		c.rebuild(alias)
	}
	return c
}

// replaces reports whether registering alias replaces something a rebound
// callback is waiting on. Must hold mu.
func (c *Container) replaces(alias string) bool {
	if len(c.rebound[alias]) == 0 {
		return false
	}
	_, bound := c.bindings[alias]
	_, cached := c.instances[alias]
	return bound || cached
}

// Instance registers a pre-built value as the cached instance of alias,
// replacing any binding.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", cfg)
func (c *Container) Instance(alias string, value any) any {
	c.mu.Lock()
	alias = c.canonical(alias)
	rebound := c.replaces(alias)
	evicted := c.evict(alias, c.cascadeRebind)
	delete(c.scoped, alias)
	delete(c.bindings, alias)
	delete(c.deferred, alias)
	c.gen++
	c.instances[alias] = entry{value: value, gen: c.gen}
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	if rebound {
		c.fireRebound(alias, value)
	}
	return value
}

// Alias registers name as an alternative for alias. Registration, Use and
// the query methods accept either.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias(container.KeyOf[*RedisCache](), "cache")
func (c *Container) Alias(alias, name string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.canonical(alias) == name {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	c.aliases[name] = alias
	return c
}

// canonical follows alternative names to the registered alias. Must hold mu.
func (c *Container) canonical(alias string) string {
	for i := 0; i <= len(c.aliases); i++ {
		target, ok := c.aliases[alias]
		if !ok {
			break
		}
		alias = target
	}
	return alias
}

func (c *Container) canonicalName(alias string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canonical(alias)
}

// Extend decorates every instance of alias built from now on. A cached
// instance is decorated in place and its cached dependents are evicted.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	c.Extend("log", func(instance any, c *container.Container) any {
//	    return instance.(*zap.Logger).Named("app")
//	})
func (c *Container) Extend(alias string, fn Extender) *Container {
	c.mu.Lock()
	alias = c.canonical(alias)
	c.extenders[alias] = append(c.extenders[alias], fn)
	e, cached := c.instances[alias]
	c.mu.Unlock()

	if !cached {
		return c
	}
	v := fn(e.value, c)

	c.mu.Lock()
	if cur, ok := c.instances[alias]; !ok || cur.gen != e.gen {
		c.mu.Unlock()
		return c
	}
	evicted := c.evictDependents(alias)
	c.gen++
	c.instances[alias] = entry{value: v, gen: c.gen}
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	c.fireRebound(alias, v)
	return c
}

func (c *Container) applyExtenders(alias string, v any) any {
	c.mu.RLock()
	exts := c.extenders[alias]
	c.mu.RUnlock()
	for _, ext := range exts {
		v = ext(v, c)
	}
	return v
}

// Rebinding registers a callback fired with the new instance whenever a
// bound or cached alias is bound again, replaced by Instance or extended.
//
//	// Laravel: $app->rebinding('request', fn($app, $request) => ...)
func (c *Container) Rebinding(alias string, cb func(instance any)) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	alias = c.canonical(alias)
	c.rebound[alias] = append(c.rebound[alias], cb)
	return c
}

// rebuild resolves a rebound alias and hands the result to its callbacks.
func (c *Container) rebuild(alias string) {
	v, err := c.Use(context.Background(), alias)
	if err != nil {
		c.log.Warn("rebound alias could not be resolved", zap.String("alias", alias), zap.Error(err))
		return
	}
	c.fireRebound(alias, v)
}

func (c *Container) fireRebound(alias string, instance any) {
	c.mu.RLock()
	cbs := c.rebound[alias]
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(instance)
	}
}

// BindAttribute routes every marker with the given identity to handler.
func (c *Container) BindAttribute(id string, handler AttributeHandler) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[id] = handler
	return c
}

// When starts a contextual binding chain.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(fn() => new S3)
//	c.When("PhotoController").Needs("Filesystem").Give(container.Func(NewS3))
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Tag associates aliases under a named group.
func (c *Container) Tag(aliases []string, tag string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], aliases...)
	return c
}

// Defer registers a loader run the first time alias is used while it has no
// binding or instance.
func (c *Container) Defer(alias string, loader Loader) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deferred[c.canonical(alias)] = &deferredLoad{load: loader}
	return c
}

// AfterResolving registers a callback fired after any alias is built by Use.
func (c *Container) AfterResolving(cb func(alias string, instance any)) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
	return c
}

// Observe adds an Observer after construction.
func (c *Container) Observe(o Observer) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
	return c
}

// ── Eviction ──────────────────────────────────────────────────────────────────

// Unscoped removes alias from the scoped set without touching its cache.
func (c *Container) Unscoped(alias string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scoped, c.canonical(alias))
	return c
}

// Unset evicts the cached instance of alias and, when cascade is set, every
// cached instance built from it.
func (c *Container) Unset(alias string, cascade bool) *Container {
	c.mu.Lock()
	evicted := c.evict(c.canonical(alias), cascade)
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return c
}

// ClearScoped evicts every scoped instance and everything built from one.
func (c *Container) ClearScoped() *Container {
	c.mu.Lock()
	var evicted []string
	for alias := range c.scoped {
		evicted = append(evicted, c.evict(alias, true)...)
	}
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return c
}

// Flush drops every binding, instance and registration, then binds the
// container to itself again.
func (c *Container) Flush() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	c.bindSelf()
}

// evict must hold mu.Lock.
func (c *Container) evict(alias string, cascade bool) []string {
	targets := []string{alias}
	if cascade {
		targets = c.deps.closure(alias)
	}

	var evicted []string
	for _, a := range targets {
		if _, ok := c.instances[a]; ok {
			delete(c.instances, a)
			evicted = append(evicted, a)
		}
		c.deps.detach(a)
	}
	return evicted
}

// evictDependents evicts everything built from alias but keeps alias
// itself. Must hold mu.Lock.
func (c *Container) evictDependents(alias string) []string {
	var evicted []string
	for _, a := range c.deps.closure(alias)[1:] {
		if _, ok := c.instances[a]; ok {
			delete(c.instances, a)
			evicted = append(evicted, a)
		}
		c.deps.detach(a)
	}
	return evicted
}

func (c *Container) notifyEvicted(aliases []string) {
	if len(aliases) == 0 {
		return
	}

	c.mu.RLock()
	observers := c.observers
	c.mu.RUnlock()

	for _, alias := range aliases {
		c.log.Debug("instance evicted", zap.String("alias", alias))
		for _, o := range observers {
			o.Evicted(alias)
		}
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Use returns the cached instance of alias or builds one.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo, err := c.Use(ctx, "UserRepository")
func (c *Container) Use(ctx context.Context, alias string) (any, error) {
	return c.UseWith(ctx, alias, Arguments{})
}

// UseWith builds alias with explicit arguments. Explicit arguments bypass the
// cache in both directions.
func (c *Container) UseWith(ctx context.Context, alias string, args Arguments) (any, error) {
	v, _, err := c.use(ctx, alias, args)
	return v, err
}

func (c *Container) use(ctx context.Context, alias string, args Arguments) (value any, dep *dependency, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	alias = c.canonicalName(alias)

	start := time.Now()
	defer func() {
		c.notifyResolved(alias, time.Since(start), err)
	}()

	if err := c.loadDeferred(ctx, alias); err != nil {
		return nil, nil, err
	}

	sc := c.scopeOf(ctx)
	c.mu.RLock()
	e, cached := c.instances[alias]
	b, bound := c.bindings[alias]
	_, scoped := c.scoped[alias]
	c.mu.RUnlock()

	if args.Len() == 0 {
		if v, ok := sc.get(alias); ok {
			return v, &dependency{alias: alias, local: true}, nil
		}
		if cached && (sc == nil || !scoped) {
			return e.value, &dependency{alias: alias, gen: e.gen}, nil
		}
	}

	ctx, err = c.enter(ctx, alias)
	if err != nil {
		return nil, nil, err
	}

	var deps []dependency
	var v any
	switch f := factoryOf(b, bound, alias).(type) {
	case Concrete:
		v, err = c.build(ctx, string(f), args, &deps)
	case Callable:
		v, err = c.call(ctx, f, args, &deps)
	default:
		err = errInvalidCallable(fmt.Sprintf("unsupported factory %T", f))
	}
	if err != nil {
		return nil, nil, err
	}

	v = c.applyExtenders(alias, v)
	c.fireAfterResolving(alias, v)

	if !bound || !b.shared || args.Len() > 0 {
		return v, nil, nil
	}
	if sc != nil && (scoped || hasLocal(deps)) {
		return sc.store(alias, v), &dependency{alias: alias, local: true}, nil
	}
	v, dep = c.store(alias, b, v, deps)
	return v, dep, nil
}

// factoryOf returns the bound factory, or the alias itself as a class name
// when it has no binding.
func factoryOf(b *binding, bound bool, alias string) Factory {
	if !bound {
		return Concrete(alias)
	}
	return b.factory
}

func hasLocal(deps []dependency) bool {
	for _, d := range deps {
		if d.local {
			return true
		}
	}
	return false
}

// store caches a freshly built shared instance and links it to the cached
// instances it was built from. The instance is returned uncached when the
// binding changed or a dependency was evicted while it was being built.
func (c *Container) store(alias string, b *binding, v any, deps []dependency) (any, *dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.instances[alias]; ok {
		return e.value, &dependency{alias: alias, gen: e.gen}
	}
	if c.bindings[alias] != b {
		return v, nil
	}
	for _, d := range deps {
		if e, ok := c.instances[d.alias]; !ok || e.gen != d.gen {
			return v, nil
		}
	}

	c.gen++
	c.instances[alias] = entry{value: v, gen: c.gen}
	for _, d := range deps {
		c.deps.link(d.alias, alias)
	}
	return v, &dependency{alias: alias, gen: c.gen}
}

// loadDeferred runs the loader registered for alias, if any. Concurrent
// callers wait for the running loader; a loader using its own alias skips
// the wait.
func (c *Container) loadDeferred(ctx context.Context, alias string) error {
	c.mu.RLock()
	d, ok := c.deferred[alias]
	c.mu.RUnlock()

	if !ok || ctx.Value(loadingKey{d}) != nil {
		return nil
	}

	d.once.Do(func() {
		c.log.Debug("loading deferred alias", zap.String("alias", alias))
		d.err = d.load(context.WithValue(ctx, loadingKey{d}, true), c)

		c.mu.Lock()
		if c.deferred[alias] == d {
			delete(c.deferred, alias)
		}
		c.mu.Unlock()
	})
	return d.err
}

// Build constructs className directly, ignoring bindings and the cache.
func (c *Container) Build(ctx context.Context, className string) (any, error) {
	return c.BuildWith(ctx, className, Arguments{})
}

// BuildWith is Build with explicit arguments.
func (c *Container) BuildWith(ctx context.Context, className string, args Arguments) (any, error) {
	ctx, err := c.enter(ctx, className)
	if err != nil {
		return nil, err
	}
	return c.build(ctx, className, args, nil)
}

func (c *Container) build(ctx context.Context, className string, args Arguments, deps *[]dependency) (any, error) {
	class, ok := c.types.Class(className)
	if !ok {
		return nil, errInvalidClass(className)
	}
	if !class.Instantiable() {
		return nil, errNotInstantiable(className)
	}

	ctor := class.Constructor()
	if ctor == nil {
		return class.Instantiate(nil)
	}

	values, err := c.resolve(ctx, ctor.params, args, deps)
	if err != nil {
		return nil, err
	}
	return class.Instantiate(values)
}

// Call invokes callable with its parameters resolved from the container.
//
//	c.Call(ctx, container.ParseCallable("Service::Value"))
func (c *Container) Call(ctx context.Context, callable Callable) (any, error) {
	return c.CallWith(ctx, callable, Arguments{})
}

// CallWith is Call with explicit arguments.
func (c *Container) CallWith(ctx context.Context, callable Callable, args Arguments) (any, error) {
	return c.call(ctx, callable, args, nil)
}

func (c *Container) call(ctx context.Context, callable Callable, args Arguments, deps *[]dependency) (any, error) {
	switch cl := callable.(type) {
	case funcCall:
		values, err := c.resolve(ctx, cl.fn.params, args, deps)
		if err != nil {
			return nil, err
		}
		return cl.fn.invoke(nil, values)

	case methodCall:
		return c.callMethod(ctx, cl, args, deps)
	}
	return nil, errInvalidCallable(fmt.Sprintf("unsupported callable %T", callable))
}

func (c *Container) callMethod(ctx context.Context, mc methodCall, args Arguments, deps *[]dependency) (any, error) {
	name, byName := mc.target.(string)

	var class *Class
	var ok bool
	if byName {
		class, ok = c.types.Class(name)
	} else {
		class, ok = c.types.ClassOf(mc.target)
	}
	if !ok {
		if byName {
			return nil, errInvalidClass(name)
		}
		return nil, errInvalidCallable(fmt.Sprintf("%T is not a registered class", mc.target))
	}

	m, ok := class.Method(mc.method)
	if !ok {
		return nil, errInvalidCallable(fmt.Sprintf("method %s does not exist", mc))
	}

	var receiver any
	switch {
	case m.Static:
	case byName:
		v, dep, err := c.use(ctx, name, Arguments{})
		if err != nil {
			return nil, err
		}
		if dep != nil && deps != nil {
			*deps = append(*deps, *dep)
		}
		receiver = v
	default:
		receiver = mc.target
	}

	values, err := c.resolve(ctx, m.params, args, deps)
	if err != nil {
		return nil, err
	}
	return m.invoke(receiver, values)
}

// Tagged resolves every alias registered under tag.
//
//	// Laravel: $app->tagged('reports')
//	reports, err := c.Tagged(ctx, "reports")
func (c *Container) Tagged(ctx context.Context, tag string) ([]any, error) {
	c.mu.RLock()
	aliases := append([]string(nil), c.tags[tag]...)
	c.mu.RUnlock()

	result := make([]any, 0, len(aliases))
	for _, alias := range aliases {
		v, err := c.Use(ctx, alias)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tag, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func (c *Container) fireAfterResolving(alias string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(alias, instance)
	}
}

func (c *Container) notifyResolved(alias string, d time.Duration, err error) {
	c.mu.RLock()
	observers := c.observers
	c.mu.RUnlock()
	for _, o := range observers {
		o.Resolved(alias, d, err)
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether alias has a binding, an instance or a deferred
// loader.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(alias string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	alias = c.canonical(alias)
	_, hasBinding := c.bindings[alias]
	_, hasInstance := c.instances[alias]
	_, isDeferred := c.deferred[alias]
	return hasBinding || hasInstance || isDeferred
}

// Resolved reports whether alias currently has a cached instance.
func (c *Container) Resolved(alias string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	alias = c.canonical(alias)
	_, ok := c.instances[alias]
	return ok
}

// IsShared reports whether Use caches alias: a singleton or scoped binding,
// or an instance.
func (c *Container) IsShared(alias string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	alias = c.canonical(alias)
	if b, ok := c.bindings[alias]; ok {
		return b.shared
	}
	_, ok := c.instances[alias]
	return ok
}

// IsScoped reports whether alias is evicted by ClearScoped and cached per
// scope inside BeginScope.
func (c *Container) IsScoped(alias string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	alias = c.canonical(alias)
	_, ok := c.scoped[alias]
	return ok
}

// Bindings returns every alias with a binding or instance, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Use and type-asserts the result.
//
//	// Instead of: v, err := c.Use(ctx, "db"); db := v.(*sql.DB)
//	db, err := container.Resolve[*sql.DB](ctx, c, "db")
func Resolve[T any](ctx context.Context, c *Container, alias string) (T, error) {
	var zero T
	instance, err := c.Use(ctx, alias)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(alias, instance, KeyOf[T]())
	}
	return typed, nil
}

// ResolveType resolves the alias KeyOf[T].
func ResolveType[T any](ctx context.Context, c *Container) (T, error) {
	return Resolve[T](ctx, c, KeyOf[T]())
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](ctx context.Context, c *Container, alias string) T {
	v, err := Resolve[T](ctx, c, alias)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return v
}
