package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit admits at most max requests past this point at once.
// Callers beyond the capacity block until a permit frees up; a client that
// goes away while waiting is released via its request context.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"code":   "UNAVAILABLE",
				"detail": "request cancelled while waiting for a slot",
			})
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
