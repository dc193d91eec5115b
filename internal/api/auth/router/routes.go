// Package router registers the auth domain routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "treesure/internal/api/auth/handler"
	"treesure/internal/api/middleware"
	apirouter "treesure/internal/api/router"
)

// Register wires the auth routes onto v1. Login is public, the profile
// endpoint requires a token.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("create auth handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, authHandler.HandleLogin)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/profile",
		[]fiber.Handler{middleware.AuthMiddleware()}, authHandler.HandleProfile)

	return nil
}
