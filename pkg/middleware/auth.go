package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qrgate/qrgate/internal/tokens"
)

// TokenValidator is the minimal interface the middleware depends on. The auth
// service binds it to its in-process token store; the proxy binds it to a
// remote client. The error return means "could not check" and is kept
// distinct from a checked-and-rejected validation.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (tokens.Validation, error)
}

// StoreValidator adapts the in-process token store to TokenValidator.
type StoreValidator struct {
	Store *tokens.Store
}

func (s StoreValidator) Validate(_ context.Context, token string) (tokens.Validation, error) {
	return s.Store.Validate(token), nil
}

// ExtractBearer returns the token from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or malformed.
func ExtractBearer(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// TokenAuth returns a Gin middleware enforcing bearer validation.
// rejectStatus is the status for missing/invalid tokens (401 on the auth
// service, 403 on the proxy); validator unavailability always answers 500 so
// "can't check" is never conflated with "checked and rejected".
func TokenAuth(v TokenValidator, rejectStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(rejectStatus, gin.H{
				"valid":   false,
				"error":   "Authentication required",
				"message": "No token provided",
			})
			return
		}

		result, err := v.Validate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"valid": false,
				"error": "Authentication service error",
			})
			return
		}
		if !result.Valid {
			c.AbortWithStatusJSON(rejectStatus, gin.H{
				"valid":  false,
				"error":  "Invalid token",
				"reason": result.Reason,
			})
			return
		}

		// resolved identity for downstream handlers, request-scoped only
		c.Set("userId", result.UserID)
		c.Set("tokenId", token)
		c.Set("tokenExpiresAt", result.ExpiresAt)
		c.Next()
	}
}
