package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Newsletter struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  bson.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	FirstName string        `bson:"firstName" json:"firstName"`
	LastName  string        `bson:"lastName" json:"lastName"`
	Email     string        `bson:"email" json:"email"`

	Location  *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	IPAddress string    `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
