package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/auth"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/mailer"
	"github.com/liftsforlife/backend/middleware"
	"github.com/liftsforlife/backend/models"
	"github.com/liftsforlife/backend/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Clients handles the client account surface. Clients are onboarded by an
// admin, so creation is admin-guarded; a client can only touch its own
// profile.
type Clients struct {
	Creds  *store.Credentials
	Issuer *auth.TokenIssuer
	Mail   mailer.Sender

	ConfirmURL func(token string) string
}

func (cl *Clients) col() *mongo.Collection { return cl.Creds.Collection() }

// GET /api/clients
func (cl *Clients) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := cl.col().Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list clients failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		clients := make([]models.Client, 0)
		if err := cursor.All(ctx, &clients); err != nil {
			log.Printf("decode clients failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, clients)
	}
}

// GET /api/clients/:id
func (cl *Clients) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}

		var client models.Client
		if err := cl.col().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&client); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

// GET /api/auth/client - profile of the logged-in client.
func (cl *Clients) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var client models.Client
		if err := cl.col().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&client); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

// POST /api/clients - admin onboards a client. The account is trusted
// (emailConfirmed defaults true); the welcome mail still carries a
// confirmation link, following it is a no-op.
func (cl *Clients) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateClientDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		createdBy, _ := middleware.PrincipalID(c)
		email := strings.TrimSpace(body.Email)

		id, err := cl.Creds.Create(c.Request.Context(), email, body.Password, bson.M{
			"firstName":   strings.TrimSpace(body.FirstName),
			"lastName":    strings.TrimSpace(body.LastName),
			"address":     strings.TrimSpace(body.Address),
			"phoneNumber": strings.TrimSpace(body.PhoneNumber),
			"newsletter":  body.Newsletter,
			"note":        body.Note,
			"createdBy":   createdBy,
			"orders":      []bson.ObjectID{},
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists", "field": "email"})
			return
		}
		if err != nil {
			log.Printf("create client failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		token, err := cl.Issuer.Issue(id)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		mailer.SendAsync(cl.Mail, email, "CONFIRM EMAIL - Lifts For Life",
			mailer.ConfirmationBody(body.FirstName, cl.ConfirmURL(token)))

		c.JSON(http.StatusCreated, gin.H{
			"id":      id,
			"message": "client created and confirmation email sent",
		})
	}
}

// PUT /api/clients - logged-in client updates its own profile.
func (cl *Clients) UpdateMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}
		cl.update(c, id)
	}
}

// PUT /api/clients/:id - admin updates any client.
func (cl *Clients) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}
		cl.update(c, id)
	}
}

func (cl *Clients) update(c *gin.Context, id bson.ObjectID) {
	var body dto.UpdateClientDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{
		"firstName":   strings.TrimSpace(body.FirstName),
		"lastName":    strings.TrimSpace(body.LastName),
		"address":     strings.TrimSpace(body.Address),
		"phoneNumber": strings.TrimSpace(body.PhoneNumber),
		"note":        body.Note,
		"updatedAt":   time.Now().UTC(),
	}
	if body.Newsletter != nil {
		set["newsletter"] = *body.Newsletter
	}

	res, err := cl.col().UpdateByID(c.Request.Context(), id, bson.M{"$set": set})
	if err != nil {
		log.Printf("update client failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client information updated"})
}

// DELETE /api/clients/:id
func (cl *Clients) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}

		err = cl.Creds.Delete(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		if err != nil {
			log.Printf("delete client failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "client removed"})
	}
}
