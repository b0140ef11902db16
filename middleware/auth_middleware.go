package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/auth"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Context keys set by the guard for downstream handlers.
const (
	CtxPrincipalID   = "principalID"
	CtxPrincipalKind = "principalKind"
)

// Guard returns middleware bound to one token issuer. It extracts the
// token, verifies it and attaches {kind, id} to the request context, or
// aborts with 401 before the handler runs. It never touches the database;
// handlers that need profile data re-fetch and handle not-found lazily.
func Guard(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		id, err := issuer.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxPrincipalID, id)
		c.Set(CtxPrincipalKind, issuer.Kind())
		c.Next()
	}
}

// extractToken reads the Authorization bearer header, falling back to the
// x-auth-token header the legacy web client sends.
func extractToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return token
	}
	return c.GetHeader("x-auth-token")
}

// PrincipalID returns the id the guard attached to the context.
func PrincipalID(c *gin.Context) (bson.ObjectID, bool) {
	v, ok := c.Get(CtxPrincipalID)
	if !ok {
		return bson.ObjectID{}, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}
