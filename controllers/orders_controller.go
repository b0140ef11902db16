package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/mailer"
	"github.com/liftsforlife/backend/middleware"
	"github.com/liftsforlife/backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Orders places and manages rental/sale orders. Creating an order also
// appends its id to the client's order list and notifies the client by
// email; both the email and the mailing are best-effort.
type Orders struct {
	Col        *mongo.Collection
	ClientsCol *mongo.Collection
	EquipsCol  *mongo.Collection
	Mail       mailer.Sender
}

// POST /api/orders
func (o *Orders) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		adminID, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		clientID, _ := bson.ObjectIDFromHex(body.ClientID)
		equipmentID, _ := bson.ObjectIDFromHex(body.EquipmentID)

		var client models.Client
		if err := o.ClientsCol.FindOne(ctx, bson.M{"_id": clientID}).Decode(&client); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		var equipment models.Equipment
		if err := o.EquipsCol.FindOne(ctx, bson.M{"_id": equipmentID}).Decode(&equipment); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		if body.IsRent && body.RentExpiry == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rent expiry date is required for rentals"})
			return
		}

		now := time.Now().UTC()
		order := models.Order{
			ID:            bson.NewObjectID(),
			ClientID:      clientID,
			AdminID:       adminID,
			EquipmentID:   equipmentID,
			ClientName:    client.FirstName + " " + client.LastName,
			EquipmentName: equipment.Name,
			IsRent:        body.IsRent,
			RentExpiry:    body.RentExpiry,
			TotalPrice:    body.TotalPrice,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := o.Col.InsertOne(ctx, order); err != nil {
			log.Printf("create order failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		if _, err := o.ClientsCol.UpdateByID(ctx, clientID, bson.M{
			"$addToSet": bson.M{"orders": order.ID},
		}); err != nil {
			// Order document exists; the back-reference is repairable.
			log.Printf("append order %s to client %s failed: %v", order.ID.Hex(), clientID.Hex(), err)
		}

		mailer.SendAsync(o.Mail, client.Email, "ORDER DETAILS - Lifts For Life",
			mailer.OrderPlacedBody(client.FirstName))

		c.JSON(http.StatusCreated, gin.H{
			"id":      order.ID,
			"message": "order placed for client " + order.ClientName,
		})
	}
}

// GET /api/orders
func (o *Orders) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := o.Col.Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Printf("list orders failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			log.Printf("decode orders failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func (o *Orders) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var order models.Order
		if err := o.Col.FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id
func (o *Orders) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var body dto.UpdateOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if body.IsRent && body.RentExpiry == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rent expiry date is required for rentals"})
			return
		}

		res, err := o.Col.UpdateByID(c.Request.Context(), id, bson.M{"$set": bson.M{
			"totalPrice": body.TotalPrice,
			"isRent":     body.IsRent,
			"rentExpiry": body.RentExpiry,
			"updatedAt":  time.Now().UTC(),
		}})
		if err != nil {
			log.Printf("update order failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order updated"})
	}
}

// DELETE /api/orders/:id - removes the order and pulls its reference from
// the owning client.
func (o *Orders) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var order models.Order
		if err := o.Col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Printf("delete order failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		if _, err := o.ClientsCol.UpdateByID(ctx, order.ClientID, bson.M{
			"$pull": bson.M{"orders": order.ID},
		}); err != nil {
			log.Printf("pull order %s from client %s failed: %v", order.ID.Hex(), order.ClientID.Hex(), err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "order removed"})
	}
}
