package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Equipment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Type      string        `bson:"type" json:"type"`
	SerialID  int64         `bson:"serialId" json:"serialId"`
	Slug      string        `bson:"slug" json:"slug"`
	SellPrice float64       `bson:"sellPrice" json:"sellPrice"`
	RentPrice float64       `bson:"rentPrice" json:"rentPrice"`

	CreatedBy bson.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
