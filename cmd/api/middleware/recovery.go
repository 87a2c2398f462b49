package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/models"
)

// Recovery converts panics into the endpoint's 500 JSON shape so internal
// faults never reach the transport layer as broken responses.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			log.Error("handler panic",
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(r),
				"request_id", c.GetString(ContextRequestID),
			)

			message := fmt.Sprintf("internal error: %v", r)

			switch c.FullPath() {
			case "/api/graph":
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": message,
					"nodes": []any{},
					"links": []any{},
				})
			case "/api/details/:nodeId", "/api/root":
				id := c.Param("nodeId")
				if id == "" {
					id = models.DefaultRootID
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":       message,
					"id":          id,
					"name":        "Error Loading Node",
					"description": message,
					"type":        "error",
				})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
			}
		}()

		c.Next()
	}
}
