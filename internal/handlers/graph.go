// Package handlers implements the HTTP endpoints serving the taxonomy graph.
// Each handler reloads the backing documents so responses reflect the disk.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/graph"
	"github.com/alignscope/core/internal/models"
	"github.com/alignscope/core/internal/observability"
	"github.com/alignscope/core/internal/store"
)

// GetGraph returns the full flattened node/link view of the taxonomy.
func GetGraph(st *store.Store, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, buildGraph(st, m))
	}
}

// buildGraph reloads every document and flattens it, recording build
// metrics when a collector is wired.
func buildGraph(st *store.Store, m *observability.Metrics) *models.Graph {
	root := st.LoadRoot()
	components := st.LoadComponents()
	subcomponents := st.LoadSubcomponents()

	start := time.Now()
	g := graph.BuildGraph(root, components, subcomponents)
	if m != nil {
		m.ObserveGraphBuild(time.Since(start).Seconds(), len(g.Nodes), len(g.Links))
	}

	return g
}
