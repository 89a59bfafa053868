package middleware

import (
	"net/http"
	"strings"

	"khidma/utils"

	"github.com/gin-gonic/gin"
)

// CustomerIDKey is the gin context key the auth middleware stores the
// authenticated customer ID under.
const CustomerIDKey = "customerID"

// CustomerAuthMiddleware validates the bearer token and exposes the
// authenticated customer ID to handlers. Token issuance (login, OTP)
// lives outside this service.
func CustomerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, err := utils.ExtractSubjectFromToken(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

// AuthenticatedCustomerID returns the customer ID set by
// CustomerAuthMiddleware, or empty when unauthenticated.
func AuthenticatedCustomerID(c *gin.Context) string {
	id, _ := c.Get(CustomerIDKey)
	s, _ := id.(string)
	return s
}
