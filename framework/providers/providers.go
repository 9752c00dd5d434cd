package providers

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/logging"
	"github.com/km-arc/go-ioc/framework/metrics"
	"github.com/km-arc/go-ioc/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration as "config".
// A preloaded Config is bound as an instance; otherwise it is loaded from
// EnvFiles on first use.
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->instance('config', $config = new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance("config", p.Config)
		return
	}

	envFiles := p.EnvFiles
	app.Singleton("config", container.Func(func() (*config.Config, error) {
		return config.Load(envFiles...)
	}))
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the zap logger as "log", built from the
// "config" log section unless Logger is given.
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
	Writer io.Writer // defaults to stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	if p.Logger != nil {
		app.Instance("log", p.Logger)
		return
	}

	w := p.Writer
	app.Singleton("log", container.Func(func(cfg *config.Config) *zap.Logger {
		if w == nil {
			return logging.New(cfg.Log)
		}
		return logging.NewWithWriter(cfg.Log, w)
	}, container.Arg("cfg").As("config")))
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router as "router". The router logs
// every request and resolves each one in its own container scope. Boot
// mounts the container inspector when config enables it.
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", container.Func(newRouter,
		container.Arg("log").As("log"),
		container.Arg("app").As("container"),
	))
}

func (p *RoutingServiceProvider) Boot(ctx context.Context, app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](ctx, app, "config")
	if err != nil {
		return err
	}
	if !cfg.Container.Inspector {
		return nil
	}

	router, err := container.Resolve[*routing.Router](ctx, app, "router")
	if err != nil {
		return err
	}
	routing.Inspect(router, app)
	return nil
}

func newRouter(log *zap.Logger, app *container.Container) *routing.Router {
	r := routing.New()
	r.Middleware(routing.RequestLogger(log), routing.ScopedRequests(app))
	return r
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the Prometheus collector as "metrics". When
// metrics are enabled, Boot subscribes it to the container and serves it on
// the configured path.
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Singleton("metrics", container.Func(metrics.NewCollector))
}

func (p *MetricsServiceProvider) Boot(ctx context.Context, app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](ctx, app, "config")
	if err != nil {
		return err
	}
	if !cfg.Metrics.Enabled {
		return nil
	}

	collector, err := container.Resolve[*metrics.Collector](ctx, app, "metrics")
	if err != nil {
		return err
	}
	router, err := container.Resolve[*routing.Router](ctx, app, "router")
	if err != nil {
		return err
	}

	app.Observe(collector)
	router.Mount(cfg.Metrics.Path, collector.Handler())
	return nil
}
