package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Messages stores contact-form submissions for admins to review.
type Messages struct {
	Col *mongo.Collection
}

// POST /api/messages - public.
func (m *Messages) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateMessageDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg := models.Message{
			ID:        bson.NewObjectID(),
			FirstName: strings.TrimSpace(body.FirstName),
			LastName:  strings.TrimSpace(body.LastName),
			Email:     strings.TrimSpace(body.Email),
			Message:   body.Message,
			Location:  geoPoint(body.Latitude, body.Longitude),
			IPAddress: c.ClientIP(),
			CreatedAt: time.Now().UTC(),
		}

		if _, err := m.Col.InsertOne(c.Request.Context(), msg); err != nil {
			log.Printf("create message failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "message": "message received"})
	}
}

// GET /api/messages
func (m *Messages) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := m.Col.Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list messages failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.Message, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			log.Printf("decode messages failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// DELETE /api/messages/:id
func (m *Messages) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
			return
		}

		res, err := m.Col.DeleteOne(c.Request.Context(), bson.M{"_id": id})
		if err != nil {
			log.Printf("delete message failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "message removed"})
	}
}
