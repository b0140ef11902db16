package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSubscribeLinksExistingClientAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	clientsCol := testCollection(t, "clients", true)
	newsCol := testCollection(t, "newsletters", true)

	clientID := bson.NewObjectID()
	_, err := clientsCol.InsertOne(ctx, bson.M{
		"_id":       clientID,
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane@example.com",
		"createdAt": time.Now().UTC(),
	})
	require.NoError(t, err)

	n := &Newsletters{Col: newsCol, ClientsCol: clientsCol}
	r := gin.New()
	r.POST("/api/newsletters", n.Subscribe())

	w := doJSON(r, http.MethodPost, "/api/newsletters",
		`{"email":"jane@example.com","firstName":"Jane","lastName":"Doe"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub models.Newsletter
	require.NoError(t, newsCol.FindOne(ctx, bson.M{"email": "jane@example.com"}).Decode(&sub))
	assert.Equal(t, clientID, sub.ClientID)

	// An address with no client account subscribes without a link.
	w = doJSON(r, http.MethodPost, "/api/newsletters",
		`{"email":"stranger@example.com","firstName":"Sal","lastName":"Moss"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, newsCol.FindOne(ctx, bson.M{"email": "stranger@example.com"}).Decode(&sub))
	assert.True(t, sub.ClientID.IsZero())
}
