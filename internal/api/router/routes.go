package router

import (
	"github.com/gofiber/fiber/v3"
)

// NOTE on middleware registration under Fiber v3:
// registering middleware inline, router.Get("/path", middleware, handler),
// silently skips the middleware. Routes must go through
// RegisterRouteWithMiddleware, which applies middleware via .Use() on a
// dedicated group. Every route in this project is registered that way.

// Router manages API routing.
type Router struct {
	app *fiber.App
}

// RoutePrefix holds the base API prefixes.
type RoutePrefix struct {
	Base string // Base prefix (/api)
	V1   string // Version 1 prefix (/api/v1)
}

// NewRoutePrefix returns the default route prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter creates a Router for the given app.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware registers a route with its middleware chain
// using the .Use() method, the only form Fiber v3 applies reliably.
//
// Example:
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(router, "/dashboard", "GET", "/summary", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Group scopes the middleware to the routes registered below
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc registers the routes of one domain (exported by domain/router).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes wires all application routes. Callers pass each domain's
// Register function to avoid import cycles.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
