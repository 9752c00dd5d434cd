package container

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Boot is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot.
//
//	// Laravel:
//	// class AppServiceProvider extends ServiceProvider {
//	//     public function register(): void { $this->app->singleton(...); }
//	//     public function boot(): void     { /* use resolved services */ }
//	// }
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("mailer", container.Func(NewMailer, container.Arg("cfg").As("config")))
//	}
//
//	func (p *AppServiceProvider) Boot(ctx context.Context, app *container.Container) error {
//	    _, err := app.Use(ctx, "mailer")
//	    return err
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(ctx context.Context, app *Container) error

	// Provides returns the aliases this provider registers. Only deferred
	// providers need it.
	//
	//	// Laravel: public function provides(): array { return [Cache::class]; }
	Provides() []string

	// IsDeferred reports whether registration waits until one of the
	// Provides aliases is first used.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(context.Context, *Container) error { return nil }
func (p *BaseProvider) Provides() []string                     { return nil }
func (p *BaseProvider) IsDeferred() bool                       { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred providers.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method unless it is
// deferred. A provider added after Boot is booted immediately.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(ctx context.Context, provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.mu.Unlock()
		load := r.loader(provider)
		for _, alias := range provider.Provides() {
			r.app.Defer(alias, load)
		}
		return nil
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)
	if booted {
		return provider.Boot(ctx, r.app)
	}
	return nil
}

// loader registers a deferred provider the first time any of its aliases is
// used, booting it when the registry already booted. Every alias shares the
// returned loader, so callers racing on different aliases wait for one
// registration.
func (r *ProviderRegistry) loader(provider ServiceProvider) Loader {
	var once sync.Once
	var err error
	return func(ctx context.Context, c *Container) error {
		if ctx.Value(bootingKey{provider}) != nil {
			return nil
		}
		once.Do(func() {
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()

			c.log.Debug("registering deferred provider", zap.Strings("provides", provider.Provides()))
			provider.Register(c)
			if booted {
				err = provider.Boot(context.WithValue(ctx, bootingKey{provider}, true), c)
			}
		})
		return err
	}
}

type bootingKey struct{ provider ServiceProvider }

// Boot calls Boot on every eager provider and returns the combined errors.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot(ctx context.Context) error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	var err error
	for _, provider := range providers {
		err = multierr.Append(err, provider.Boot(ctx, r.app))
	}
	return err
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
