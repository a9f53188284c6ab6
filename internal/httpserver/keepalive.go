package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// keepAliveHandler performs a trivial catalog read so the hosted
// database does not suspend from inactivity. Unauthenticated on
// purpose: external pingers hit it on a schedule.
func keepAliveHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(c.Request.Context()); err != nil {
			logger.Printf("keep-alive: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "database is awake",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
