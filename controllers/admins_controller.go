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

// Admins handles the administrator account surface. Credential mutations
// go through the shared store; profile reads hit the collection directly.
type Admins struct {
	Creds  *store.Credentials
	Issuer *auth.TokenIssuer
	Mail   mailer.Sender

	ConfirmURL func(token string) string
}

func (a *Admins) col() *mongo.Collection { return a.Creds.Collection() }

// GET /api/admins
func (a *Admins) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := a.col().Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list admins failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		admins := make([]models.Admin, 0)
		if err := cursor.All(ctx, &admins); err != nil {
			log.Printf("decode admins failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, admins)
	}
}

// GET /api/admins/:id
func (a *Admins) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin id"})
			return
		}

		var admin models.Admin
		if err := a.col().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&admin); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}

		c.JSON(http.StatusOK, admin)
	}
}

// GET /api/auth/admin - profile of the logged-in admin.
func (a *Admins) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var admin models.Admin
		if err := a.col().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&admin); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}

		c.JSON(http.StatusOK, admin)
	}
}

// POST /api/admins - register a new admin. The account starts
// unconfirmed; a confirmation link goes out to the mailbox and login is
// refused until it is followed.
func (a *Admins) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateAdminDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		createdBy, _ := middleware.PrincipalID(c)
		email := strings.TrimSpace(body.Email)

		id, err := a.Creds.Create(c.Request.Context(), email, body.Password, bson.M{
			"name":      strings.TrimSpace(body.Name),
			"phone":     strings.TrimSpace(body.Phone),
			"createdBy": createdBy,
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists", "field": "email"})
			return
		}
		if err != nil {
			log.Printf("create admin failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		token, err := a.Issuer.Issue(id)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		mailer.SendAsync(a.Mail, email, "CONFIRM EMAIL - Lifts For Life",
			mailer.ConfirmationBody(body.Name, a.ConfirmURL(token)))

		c.JSON(http.StatusCreated, gin.H{
			"id":      id,
			"message": "admin created, please confirm email to login",
		})
	}
}

// PUT /api/admins - update the logged-in admin's profile. Email changes
// go through the change-email flow so the confirmation flag cannot be
// bypassed here.
func (a *Admins) UpdateMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateAdminDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		res, err := a.col().UpdateByID(c.Request.Context(), id, bson.M{"$set": bson.M{
			"name":      strings.TrimSpace(body.Name),
			"phone":     strings.TrimSpace(body.Phone),
			"updatedAt": time.Now().UTC(),
		}})
		if err != nil {
			log.Printf("update admin failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "admin information updated"})
	}
}

// DELETE /api/admins/me
func (a *Admins) DeleteMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		if err := a.deleteByID(c, id); err != nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "admin profile deleted"})
	}
}

// DELETE /api/admins/:id
func (a *Admins) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin id"})
			return
		}

		if err := a.deleteByID(c, id); err != nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "admin removed"})
	}
}

// deleteByID removes the account and writes the error response itself.
func (a *Admins) deleteByID(c *gin.Context, id bson.ObjectID) error {
	err := a.Creds.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "admin not found"})
		return err
	}
	if err != nil {
		log.Printf("delete admin failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return err
	}
	return nil
}
