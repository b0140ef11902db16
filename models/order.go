package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Order struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID bson.ObjectID `bson:"clientId" json:"clientId"`
	AdminID  bson.ObjectID `bson:"adminId" json:"adminId"`

	EquipmentID bson.ObjectID `bson:"equipmentId" json:"equipmentId"`

	// Denormalized for list views so the admin UI does not have to join.
	ClientName    string `bson:"clientName,omitempty" json:"clientName,omitempty"`
	EquipmentName string `bson:"equipmentName,omitempty" json:"equipmentName,omitempty"`

	IsRent     bool       `bson:"isRent" json:"isRent"`
	RentExpiry *time.Time `bson:"rentExpiry,omitempty" json:"rentExpiry,omitempty"`
	TotalPrice float64    `bson:"totalPrice" json:"totalPrice"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
