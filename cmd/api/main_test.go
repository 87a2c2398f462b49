// Package main starts the HTTP server behind the alignment taxonomy explorer.
// It wires the document store, metrics, and API routes from environment
// configuration, then serves until interrupted.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alignscope/core/internal/handlers"
	"github.com/alignscope/core/internal/observability"
	"github.com/alignscope/core/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter assembles the full production middleware and route stack
// over a fixture data directory and an isolated metrics registry.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()

	cfg := store.Config{
		RootFile:         filepath.Join(dir, "ai-alignment.json"),
		ComponentsDir:    filepath.Join(dir, "components"),
		SubcomponentsDir: filepath.Join(dir, "subcomponents"),
	}
	require.NoError(t, os.MkdirAll(cfg.ComponentsDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.SubcomponentsDir, 0o755))

	writeFile(t, cfg.RootFile, `{"id": "ai-alignment", "name": "AI Alignment"}`)
	writeFile(t, filepath.Join(cfg.ComponentsDir, "value-learning.json"),
		`{"id": "value-learning", "name": "Value Learning"}`)
	writeFile(t, filepath.Join(cfg.SubcomponentsDir, "reward-modeling.json"),
		`{"id": "reward-modeling", "parent": "value-learning", "name": "Reward Modeling"}`)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(cfg, log)

	reg := prometheus.NewRegistry()
	m := observability.New(reg)

	return newRouter(log, st, m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), "*")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMainRoutes(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("graph endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("metrics endpoint is accessible outside the api group", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("root path returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutePaths(t *testing.T) {
	router := setupTestRouter(t)

	testCases := []struct {
		name           string
		path           string
		method         string
		expectedStatus int
	}{
		{"graph with GET", "/api/graph", http.MethodGet, http.StatusOK},
		{"graph with POST", "/api/graph", http.MethodPost, http.StatusNotFound},
		{"graph with trailing slash", "/api/graph/", http.MethodGet, http.StatusMovedPermanently},
		{"known details", "/api/details/value-learning", http.MethodGet, http.StatusOK},
		{"unknown details", "/api/details/missing", http.MethodGet, http.StatusNotFound},
		{"root document", "/api/root", http.MethodGet, http.StatusOK},
		{"hierarchy path", "/api/hierarchy-path/reward-modeling", http.MethodGet, http.StatusOK},
		{"health", "/api/health", http.MethodGet, http.StatusOK},
		{"preflight", "/api/graph", http.MethodOptions, http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestHealthEndpointIntegration(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("health returns valid response structure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		var response handlers.HealthResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)

		assert.Equal(t, "ok", response.Status)
		assert.Equal(t, "alignscope-api", response.Service)
		assert.NotEmpty(t, response.Timestamp)
		assert.NotEmpty(t, response.Uptime)
		assert.Empty(t, response.Errors)
	})
}

func TestCORSHeaders(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("api responses carry the allowance", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight is satisfied without touching a handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/details/anything", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDs(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("every response gets a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("an incoming request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Request-ID", "trace-me-1")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "trace-me-1", w.Header().Get("X-Request-ID"))
	})
}

func TestMetricsExposition(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("request and build metrics show up on the scrape", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
			router.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "alignscope_http_requests_total")
		assert.Contains(t, body, "alignscope_graph_builds_total 3")
		assert.Contains(t, body, "alignscope_graph_nodes")
	})
}

func TestConcurrentRequests(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("handles concurrent graph builds", func(t *testing.T) {
		numRequests := 50
		results := make(chan int, numRequests)

		for range numRequests {
			go func() {
				req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				results <- w.Code
			}()
		}

		for range numRequests {
			code := <-results
			assert.Equal(t, http.StatusOK, code)
		}
	})

	t.Run("handles mixed concurrent requests", func(t *testing.T) {
		numRequests := 100
		results := make(chan int, numRequests)

		for i := 0; i < numRequests; i++ {
			go func(index int) {
				path := "/api/graph"
				if index%2 == 0 {
					path = "/api/health"
				}
				req := httptest.NewRequest(http.MethodGet, path, nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				results <- w.Code
			}(i)
		}

		for range numRequests {
			code := <-results
			assert.Equal(t, http.StatusOK, code)
		}
	})
}

func TestContentTypeHeaders(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("all successful api responses return application/json", func(t *testing.T) {
		paths := []string{"/api/graph", "/api/root", "/api/health", "/api/details/value-learning"}

		for _, path := range paths {
			t.Run(path, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				w := httptest.NewRecorder()

				router.ServeHTTP(w, req)

				require.Equal(t, http.StatusOK, w.Code)
				assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			})
		}
	})
}
