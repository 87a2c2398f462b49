// Package handlers implements the HTTP endpoints serving the taxonomy graph.
// Each handler reloads the backing documents so responses reflect the disk.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/store"
)

const serviceName = "alignscope-api"

// HealthResponse reports the load status of every backing document
// alongside basic service metadata.
type HealthResponse struct {
	Status        string           `json:"status"`
	Timestamp     string           `json:"timestamp"`
	Service       string           `json:"service"`
	Uptime        string           `json:"uptime,omitempty"`
	Root          store.RootStatus `json:"root"`
	Components    store.DirStatus  `json:"components"`
	Subcomponents store.DirStatus  `json:"subcomponents"`
	Errors        []string         `json:"errors"`
}

var startTime = time.Now()

// GetHealth probes every configured document location and reports what
// loaded. The response code is 200 only when nothing failed.
func GetHealth(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := st.Report()

		code := http.StatusOK
		if len(report.Errors) > 0 {
			code = http.StatusInternalServerError
		}

		c.JSON(code, HealthResponse{
			Status:        report.Status,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Service:       serviceName,
			Uptime:        time.Since(startTime).String(),
			Root:          report.Root,
			Components:    report.Components,
			Subcomponents: report.Subcomponents,
			Errors:        report.Errors,
		})
	}
}
