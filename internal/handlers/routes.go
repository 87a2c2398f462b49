// Package handlers implements the HTTP endpoints serving the taxonomy graph.
// Each handler reloads the backing documents so responses reflect the disk.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/observability"
	"github.com/alignscope/core/internal/store"
)

// SetupRoutes registers every API endpoint under /api. Middleware passed
// here applies to the API group only, not to anything mounted beside it.
func SetupRoutes(router *gin.Engine, st *store.Store, m *observability.Metrics, apiMiddleware ...gin.HandlerFunc) {
	api := router.Group("/api", apiMiddleware...)

	api.GET("/graph", GetGraph(st, m))
	api.GET("/details/:nodeId", GetDetails(st))
	api.GET("/root", GetRoot(st))
	api.GET("/hierarchy-path/:nodeId", GetHierarchyPath(st, m))
	api.GET("/health", GetHealth(st))

	// Preflight requests carry no node ID worth routing; one wildcard
	// keeps the group middleware in front of all of them.
	api.OPTIONS("/*any", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
