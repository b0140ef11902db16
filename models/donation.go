package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type GeoPoint struct {
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

type Donation struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName     string        `bson:"firstName" json:"firstName"`
	LastName      string        `bson:"lastName" json:"lastName"`
	Email         string        `bson:"email" json:"email"`
	EquipmentType string        `bson:"equipmentType" json:"equipmentType"`
	Message       string        `bson:"message,omitempty" json:"message,omitempty"`

	Location  *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	IPAddress string    `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
