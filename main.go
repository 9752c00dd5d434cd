package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/http"
	"github.com/km-arc/go-ioc/routing"
)

// ── Domain ────────────────────────────────────────────────────────────────────

type UserRepository interface {
	Find(id string) (string, bool)
}

type MemoryUserRepository struct {
	users map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]string{"1": "Alice", "2": "Bob"}}
}

func (r *MemoryUserRepository) Find(id string) (string, bool) {
	name, ok := r.users[id]
	return name, ok
}

// RequestContext lives for one request.
type RequestContext struct {
	ID string
}

func NewRequestContext() *RequestContext {
	return &RequestContext{ID: uuid.NewString()}
}

type UserService struct {
	repo    UserRepository
	request *RequestContext
	log     *zap.Logger
}

func NewUserService(repo UserRepository, request *RequestContext, log *zap.Logger) *UserService {
	return &UserService{repo: repo, request: request, log: log}
}

func (s *UserService) Show(id string) (map[string]any, error) {
	name, ok := s.repo.Find(id)
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	s.log.Debug("user found", zap.String("id", id), zap.String("request", s.request.ID))
	return map[string]any{"id": id, "name": name, "request": s.request.ID}, nil
}

var visits atomic.Int64

func CountVisit(cfg *config.Config) string {
	return fmt.Sprintf("%s visit #%d", cfg.App.Name, visits.Add(1))
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

func register(a *app.Application) {
	types := a.Types()
	container.Define[UserRepository](types)
	container.Define[*MemoryUserRepository](types).Constructor(NewMemoryUserRepository)
	container.Define[*RequestContext](types).Constructor(NewRequestContext)
	container.Define[*UserService](types).
		Constructor(NewUserService,
			container.Arg("repo"),
			container.Arg("request"),
			container.Arg("log").As("log"),
		).
		Method("Show", (*UserService).Show, container.Arg("id"))

	// Laravel: $app->singleton(UserRepository::class, MemoryUserRepository::class)
	a.Singleton(container.KeyOf[UserRepository](), container.Concrete(container.KeyOf[*MemoryUserRepository]()))
	// Laravel: $app->scoped(RequestContext::class)
	a.Scoped(container.KeyOf[*RequestContext](), nil)
	a.Scoped(container.KeyOf[*UserService](), nil)

	a.Bind("visits", container.Func(CountVisit, container.Arg("cfg").As("config")))
}

func routes(a *app.Application) {
	r := a.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		v, err := a.Use(req.Context(), "visits")
		if err != nil {
			res.ContainerError(err)
			return
		}
		res.Success(map[string]any{"message": v})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		// GET /api/v1/users/{id}
		api.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			user, err := a.CallWith(req.Context(),
				container.Method(container.KeyOf[*UserService](), "Show"),
				container.Args("id", routing.Param(req, "id")),
			)
			if err != nil {
				if container.IsFactoryFailed(err) {
					res.NotFound(err.Error())
					return
				}
				res.ContainerError(err)
				return
			}
			res.Success(user)
		})
	})
}

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	register(application)
	routes(application)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Fatal("server error", zap.Error(err))
	}
}
