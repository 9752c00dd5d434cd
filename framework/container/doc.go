// Package container provides a Laravel-style IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container maps string aliases to factories. An alias is built with a
// Concrete class, a Go function, or a method on a class or instance, and its
// parameters are resolved from the container. Shared aliases are cached; the
// container records which cached instances were built from which, so evicting
// one also evicts everything built from it.
//
// Go has no runtime access to parameter names, so classes are described up
// front with Define and parameter specs:
//
//	types := container.NewTypes()
//	container.DefineNamed[*Mailer](types, "Mailer").
//	    Constructor(NewMailer, container.Arg("transport"), container.Arg("from").Default("noreply@example.com"))
//	c := container.New(container.WithTypes(types))
//
// # Lifetimes
//
//	// Transient: new instance every Use
//	// Laravel: $app->bind(Foo::class)
//	c.Bind("Foo", nil)
//
//	// Singleton: built once, cached
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache)
//	c.Singleton("cache", container.Func(NewRedisCache, container.Arg("cfg").As("config")))
//
//	// Scoped: cached per scope, or until ClearScoped outside one
//	// Laravel: $app->scoped(Request::class)
//	c.Scoped("request", container.Func(NewRequestState))
//
//	ctx, end := c.BeginScope(ctx)
//	defer end()
//
//	// Pre-built value
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", cfg)
//
// # Resolving
//
//	// Laravel: $app->make(Cache::class)
//	v, err := c.Use(ctx, "cache")
//
//	// Laravel: $app->make(ArgumentService::class, ['b' => 5])
//	v, err = c.UseWith(ctx, "ArgumentService", container.Args("b", 5))
//
//	// Generic
//	cache, err := container.Resolve[*RedisCache](ctx, c, "cache")
//
// A parameter is filled from, in order: an explicit argument with its name,
// its first marker, the context when it is a context.Context, the container
// when its type is a registered class, its default, nil when nullable.
// Explicit arguments no parameter claimed are passed after the declared ones.
//
// # Calling
//
//	// Laravel: $app->call([Service::class, 'value'])
//	v, err := c.Call(ctx, container.ParseCallable("Service::Value"))
//
// # Eviction
//
//	c.Unset("config", true) // config and everything built from it
//	c.ClearScoped()         // every scoped instance and its dependents
//
// Rebinding an alias with Bind or Instance evicts its dependents too, unless
// the container was created with WithCascadeOnRebind(false).
//
// # Aliases, Extenders and Rebinding
//
//	// Laravel: $app->alias(RedisCache::class, 'cache')
//	c.Alias(container.KeyOf[*RedisCache](), "cache")
//
//	// Laravel: $app->extend('cache', fn($cache, $app) => new TaggedCache($cache))
//	c.Extend("cache", func(v any, c *container.Container) any { return NewTaggedCache(v.(*RedisCache)) })
//
//	// Laravel: $app->rebinding('cache', fn($app, $cache) => ...)
//	c.Rebinding("cache", func(v any) { ... })
//
// # Contextual Binding
//
//	// Laravel: $app->when(PhotoController::class)
//	//              ->needs(Filesystem::class)
//	//              ->give(fn() => new S3Filesystem)
//	c.When("PhotoController").Needs("Filesystem").Give(container.Func(NewS3Filesystem))
//
// # Markers
//
// A Marker attached to a parameter resolves it instead of its type.
// BindAttribute (or BindMarker) overrides every marker of one identity:
//
//	container.BindMarker(c, func(ctx context.Context, m Env, c *container.Container) (any, error) {
//	    return os.Getenv(m.Key), nil
//	})
//
// # Tags
//
//	// Laravel: $app->tag([CpuReport::class, MemReport::class], 'reports')
//	c.Tag([]string{"CpuReport", "MemReport"}, "reports")
//	reports, err := c.Tagged(ctx, "reports")
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(ctx, &AppServiceProvider{})
//	err := registry.Boot(ctx)
//
// Deferred providers register on the first Use of an alias they provide.
package container
