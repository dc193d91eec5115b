// Package router registers the report domain routes: dashboard summary,
// dataset views, filter options, cache invalidation and export.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"treesure/internal/api/middleware"
	reporthdl "treesure/internal/api/report/handler"
	apirouter "treesure/internal/api/router"
)

// Register wires every report route onto v1. All of them require a
// valid session token, the cache is keyed by it.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("create report handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/summary", auth, reportHandler.HandleSummary)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/trees", auth, reportHandler.HandleTrees)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/applications", auth, reportHandler.HandleApplications)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/appointments", auth, reportHandler.HandleAppointments)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/filter-options", auth, reportHandler.HandleFilterOptions)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "DELETE", "/cache/:dataset?", auth, reportHandler.HandleInvalidate)
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "POST", "/export", auth, reportHandler.HandleExport)

	return nil
}
