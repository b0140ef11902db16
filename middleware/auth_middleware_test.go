package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func guardedRouter(issuer *auth.TokenIssuer, seen *bson.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Guard(issuer), func(c *gin.Context) {
		id, ok := PrincipalID(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		*seen = id
		c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
	})
	return r
}

func TestGuardAcceptsBearerToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(auth.KindAdmin, "test-secret", time.Hour)
	id := bson.NewObjectID()
	token, err := issuer.Issue(id)
	require.NoError(t, err)

	var seen bson.ObjectID
	r := guardedRouter(issuer, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, seen)
}

func TestGuardAcceptsLegacyHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer(auth.KindClient, "test-secret", time.Hour)
	id := bson.NewObjectID()
	token, err := issuer.Issue(id)
	require.NoError(t, err)

	var seen bson.ObjectID
	r := guardedRouter(issuer, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-auth-token", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, seen)
}

func TestGuardRejectsMissingToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(auth.KindAdmin, "test-secret", time.Hour)

	var seen bson.ObjectID
	r := guardedRouter(issuer, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, seen.IsZero(), "handler must not run")
}

func TestGuardRejectsTokenOfOtherKind(t *testing.T) {
	adminIssuer := auth.NewTokenIssuer(auth.KindAdmin, "test-secret", time.Hour)
	clientIssuer := auth.NewTokenIssuer(auth.KindClient, "test-secret", time.Hour)

	token, err := clientIssuer.Issue(bson.NewObjectID())
	require.NoError(t, err)

	var seen bson.ObjectID
	r := guardedRouter(adminIssuer, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, seen.IsZero(), "handler must not run")
}

func TestGuardRejectsMangledToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(auth.KindAdmin, "test-secret", time.Hour)

	var seen bson.ObjectID
	r := guardedRouter(issuer, &seen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, seen.IsZero())
}
