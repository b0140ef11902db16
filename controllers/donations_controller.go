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

// Donations records equipment donation offers from the public site.
type Donations struct {
	Col *mongo.Collection
}

// POST /api/donations - public.
func (d *Donations) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateDonationDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		donation := models.Donation{
			ID:            bson.NewObjectID(),
			FirstName:     strings.TrimSpace(body.FirstName),
			LastName:      strings.TrimSpace(body.LastName),
			Email:         strings.TrimSpace(body.Email),
			EquipmentType: strings.TrimSpace(body.EquipmentType),
			Message:       body.Message,
			Location:      geoPoint(body.Latitude, body.Longitude),
			IPAddress:     c.ClientIP(),
			CreatedAt:     time.Now().UTC(),
		}

		if _, err := d.Col.InsertOne(c.Request.Context(), donation); err != nil {
			log.Printf("create donation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": donation.ID, "message": "donation offer received"})
	}
}

// GET /api/donations
func (d *Donations) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := d.Col.Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list donations failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		donations := make([]models.Donation, 0)
		if err := cursor.All(ctx, &donations); err != nil {
			log.Printf("decode donations failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, donations)
	}
}

// GET /api/donations/:id
func (d *Donations) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		var donation models.Donation
		if err := d.Col.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&donation); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}

		c.JSON(http.StatusOK, donation)
	}
}

// DELETE /api/donations/:id
func (d *Donations) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		res, err := d.Col.DeleteOne(c.Request.Context(), bson.M{"_id": id})
		if err != nil {
			log.Printf("delete donation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "donation removed"})
	}
}

func geoPoint(lat, lng *float64) *models.GeoPoint {
	if lat == nil && lng == nil {
		return nil
	}
	p := &models.GeoPoint{}
	if lat != nil {
		p.Latitude = *lat
	}
	if lng != nil {
		p.Longitude = *lng
	}
	return p
}
