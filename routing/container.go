package routing

import (
	"net/http"

	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/http"
)

// InspectPrefix is where Inspect mounts the container routes.
const InspectPrefix = "/_container"

// ScopedRequests gives every request its own container scope: scoped
// aliases used with the request context are built once per request and
// dropped when it completes, even while other requests are in flight.
//
//	// Laravel Octane: $app->forgetScopedInstances() after each request
//	router.Middleware(routing.ScopedRequests(app.Container))
func ScopedRequests(c *container.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, end := c.BeginScope(req.Context())
			defer end()
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// Inspect mounts read-mostly container diagnostics:
//
//	GET  /_container                 graph as JSON
//	GET  /_container/table           graph as a text table
//	GET  /_container/dot             graph in Graphviz format
//	GET  /_container/aliases/{alias} one alias (aliases may contain slashes)
//	POST /_container/scoped/clear    evict scoped instances cached outside a request scope
func Inspect(r *Router, c *container.Container) {
	r.Prefix(InspectPrefix, func(r *Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			gohttp.NewResponse(w).Success(c.Graph())
		})

		r.Get("/table", func(w http.ResponseWriter, req *http.Request) {
			gohttp.NewResponse(w).Text(http.StatusOK, "text/plain; charset=utf-8", c.SprintGraph())
		})

		r.Get("/dot", func(w http.ResponseWriter, req *http.Request) {
			gohttp.NewResponse(w).Text(http.StatusOK, "text/vnd.graphviz", c.SprintGraphDOT())
		})

		r.Get("/aliases/*", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			info, ok := c.Describe(Param(req, "*"))
			if !ok {
				res.NotFound("Alias not bound.")
				return
			}
			res.Success(info)
		})

		r.Post("/scoped/clear", func(w http.ResponseWriter, req *http.Request) {
			c.ClearScoped()
			gohttp.NewResponse(w).NoContent()
		})
	})
}
