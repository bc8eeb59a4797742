package middleware

import "github.com/gin-gonic/gin"

// userIDKey stores the authenticated user's ID in the Gin context. The ID
// ends up in the audit fields of every mandate, payment and group write.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by the JWT
// middleware, falling back to the request context for handlers invoked
// outside the Gin chain. The boolean reports whether an ID was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
