// Package handlers implements the HTTP endpoints serving the taxonomy graph.
// Each handler reloads the backing documents so responses reflect the disk.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/graph"
	"github.com/alignscope/core/internal/models"
	"github.com/alignscope/core/internal/store"
)

// NodeError is the body of a failed node lookup. It carries enough of a
// node shape for the front end to render a placeholder.
type NodeError struct {
	Error       string `json:"error"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// GetDetails returns the raw document fragment behind a node ID.
func GetDetails(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondDetails(c, st, c.Param("nodeId"))
	}
}

// GetRoot returns the root document, equivalent to requesting its ID
// through the details endpoint.
func GetRoot(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondDetails(c, st, models.DefaultRootID)
	}
}

func respondDetails(c *gin.Context, st *store.Store, nodeID string) {
	root := st.LoadRoot()
	components := st.LoadComponents()
	subcomponents := st.LoadSubcomponents()

	fragment, err := graph.Resolve(nodeID, root, components, subcomponents)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, fragment)
	case errors.Is(err, graph.ErrNotFound):
		c.JSON(http.StatusNotFound, NodeError{
			Error:       err.Error(),
			ID:          nodeID,
			Name:        "Unknown Node",
			Description: "Node details not found",
			Type:        "unknown",
		})
	default:
		c.JSON(http.StatusInternalServerError, NodeError{
			Error:       err.Error(),
			ID:          nodeID,
			Name:        "Error Loading Node",
			Description: err.Error(),
			Type:        "error",
		})
	}
}
