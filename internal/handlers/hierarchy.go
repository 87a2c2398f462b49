// Package handlers implements the HTTP endpoints serving the taxonomy graph.
// Each handler reloads the backing documents so responses reflect the disk.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/graph"
	"github.com/alignscope/core/internal/observability"
	"github.com/alignscope/core/internal/store"
)

// HierarchyPathResponse wraps the root-to-node breadcrumb trail.
type HierarchyPathResponse struct {
	Path []graph.PathEntry `json:"path"`
}

// ErrorResponse is the generic error body for endpoints without a
// node-shaped fallback.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetHierarchyPath returns the chain of ancestors from the root down to
// the requested node.
func GetHierarchyPath(st *store.Store, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		nodeID := c.Param("nodeId")

		path, ok := graph.HierarchyPath(buildGraph(st, m), nodeID)
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Node not found"})
			return
		}

		c.JSON(http.StatusOK, HierarchyPathResponse{Path: path})
	}
}
