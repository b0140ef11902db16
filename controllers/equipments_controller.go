package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/middleware"
	"github.com/liftsforlife/backend/models"
	"github.com/liftsforlife/backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Equipments struct {
	Col *mongo.Collection
}

// GET /api/equipments
func (e *Equipments) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 50)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 50
		}
		if limit > 200 {
			limit = 200
		}
		skip := int64((page - 1) * limit)

		filter := bson.M{}
		if t := strings.TrimSpace(c.Query("type")); t != "" {
			filter["type"] = t
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "name", Value: 1}})

		cursor, err := e.Col.Find(ctx, filter, opts)
		if err != nil {
			log.Printf("list equipments failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Equipment, 0)
		if err := cursor.All(ctx, &items); err != nil {
			log.Printf("decode equipments failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		total, err := e.Col.CountDocuments(ctx, filter)
		if err != nil {
			log.Printf("count equipments failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GET /api/equipments/:id
func (e *Equipments) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		var eq models.Equipment
		if err := e.Col.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&eq); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		c.JSON(http.StatusOK, eq)
	}
}

// GET /api/equipments/slug/:slug
func (e *Equipments) GetBySlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(c.Param("slug"))
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no slug provided"})
			return
		}

		var eq models.Equipment
		if err := e.Col.FindOne(c.Request.Context(), bson.M{"slug": slug}).Decode(&eq); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		c.JSON(http.StatusOK, eq)
	}
}

// POST /api/equipments
func (e *Equipments) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateEquipmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		createdBy, _ := middleware.PrincipalID(c)
		now := time.Now().UTC()

		eq := models.Equipment{
			ID:        bson.NewObjectID(),
			Name:      strings.TrimSpace(body.Name),
			Type:      strings.TrimSpace(body.Type),
			SerialID:  body.SerialID,
			Slug:      utils.GenerateSlug(body.Name),
			SellPrice: body.SellPrice,
			RentPrice: body.RentPrice,
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := e.Col.InsertOne(c.Request.Context(), eq); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "serial id or slug already exists"})
				return
			}
			log.Printf("create equipment failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": eq.ID})
	}
}

// PATCH /api/equipments/:id
func (e *Equipments) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		var body dto.UpdateEquipmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = v
			set["slug"] = utils.GenerateSlug(v)
		}
		if body.Type != nil {
			v := strings.TrimSpace(*body.Type)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "type cannot be empty"})
				return
			}
			set["type"] = v
		}
		if body.SellPrice != nil {
			set["sellPrice"] = *body.SellPrice
		}
		if body.RentPrice != nil {
			set["rentPrice"] = *body.RentPrice
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := e.Col.UpdateByID(c.Request.Context(), id, bson.M{"$set": set})
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "name"})
				return
			}
			log.Printf("update equipment failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "equipment updated"})
	}
}

// DELETE /api/equipments/:id
func (e *Equipments) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		res, err := e.Col.DeleteOne(c.Request.Context(), bson.M{"_id": id})
		if err != nil {
			log.Printf("delete equipment failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "equipment deleted"})
	}
}
