package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for context keys set by this package. Using a
// custom type prevents collisions with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	holderIDKey  = contextKey("holderID")
)

// GetHolderIDFromContext retrieves the authenticated holder ID set by
// AuthMiddleware. It returns the ID and a boolean indicating if it was found.
func GetHolderIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(holderIDKey)); exists {
		if id, ok := v.(string); ok {
			return id, true
		}
		return "", false
	}
	// check the request context as well
	if v := c.Request.Context().Value(holderIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}
