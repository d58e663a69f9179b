//go:build unit

package api_test

import (
	"net/http"

	"order-fulfillment/internal/handler/middleware"
	"order-fulfillment/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const bearerToken = "bearer-token"

// fakeAuth authenticates every request carrying an Authorization header as
// the given actor.
func fakeAuth(actor *shared.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, *actor)
		c.Next()
	}
}
