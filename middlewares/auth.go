// validates the JWT and injects uid/email into the Gin context for downstream handlers.

package middlewares

import (
	"net/http"
	"strings"

	"TodoAPI/global"
	"TodoAPI/utils"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks an access token; *utils.TokenManager implements it.
type TokenVerifier interface {
	Verify(raw string) (*utils.Claims, error)
}

const invalidTokenDetail = "Invalid or expired authentication token"

// Auth requires "Authorization: Bearer <token>". Every failure is the same 401 so callers
// cannot tell a bad signature from an expired token.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}
		claims, err := v.Verify(raw)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(global.CtxUserIDKey, claims.Subject)
		c.Set(global.CtxEmailKey, claims.Email)
		c.Next()
	}
}

// bearerToken accepts the scheme in any case, like most clients send it.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": invalidTokenDetail})
}

// UserID returns the authenticated user id, or "" outside Auth.
func UserID(c *gin.Context) string {
	return c.GetString(global.CtxUserIDKey)
}
