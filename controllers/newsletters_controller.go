package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/mailchimp"
	"github.com/liftsforlife/backend/models"
	"github.com/liftsforlife/backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Newsletters manages the local subscriber list and mirrors changes to
// the external mailing list. The mirror is best-effort: the local record
// is the source of truth and a sync failure never fails the request.
type Newsletters struct {
	Col        *mongo.Collection
	ClientsCol *mongo.Collection
	Mailchimp  *mailchimp.Client
}

// POST /api/newsletters - public subscribe.
func (n *Newsletters) Subscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SubscribeNewsletterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.TrimSpace(body.Email)
		firstName := strings.TrimSpace(body.FirstName)
		lastName := strings.TrimSpace(body.LastName)

		ctx := c.Request.Context()

		sub := models.Newsletter{
			ID:        bson.NewObjectID(),
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Location:  geoPoint(body.Latitude, body.Longitude),
			IPAddress: c.ClientIP(),
			CreatedAt: time.Now().UTC(),
		}

		// Link the subscription to a client account when the address
		// belongs to one.
		if n.ClientsCol != nil {
			var client models.Client
			if err := n.ClientsCol.FindOne(ctx, bson.M{"email": email}).Decode(&client); err == nil {
				sub.ClientID = client.ID
			}
		}

		if _, err := n.Col.InsertOne(ctx, sub); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already subscribed"})
				return
			}
			log.Printf("subscribe newsletter failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		n.syncAsync(func(ctx context.Context) error {
			return n.Mailchimp.SyncSubscribe(ctx, email, firstName, lastName)
		})

		c.JSON(http.StatusCreated, gin.H{"message": "email added to newsletter list"})
	}
}

// DELETE /api/newsletters - public unsubscribe.
func (n *Newsletters) Unsubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UnsubscribeNewsletterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.TrimSpace(body.Email)

		res, err := n.Col.DeleteOne(c.Request.Context(), bson.M{"email": email})
		if err != nil {
			log.Printf("unsubscribe newsletter failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "email not subscribed"})
			return
		}

		n.syncAsync(func(ctx context.Context) error {
			return n.Mailchimp.SyncUnsubscribe(ctx, email)
		})

		c.JSON(http.StatusOK, gin.H{"message": "email unsubscribed"})
	}
}

// GET /api/newsletters
func (n *Newsletters) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := n.Col.Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list newsletters failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		subs := make([]models.Newsletter, 0)
		if err := cursor.All(ctx, &subs); err != nil {
			log.Printf("decode newsletters failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, subs)
	}
}

// syncAsync runs a mailing-list sync off the request goroutine. The
// request context is already done once the response is written, so the
// sync gets its own deadline.
func (n *Newsletters) syncAsync(fn func(context.Context) error) {
	if n.Mailchimp == nil || !n.Mailchimp.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Printf("mailchimp sync failed: %v", err)
		}
	}()
}
