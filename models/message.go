package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is a contact-form submission from the public site.
type Message struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string        `bson:"firstName" json:"firstName"`
	LastName  string        `bson:"lastName" json:"lastName"`
	Email     string        `bson:"email" json:"email"`
	Message   string        `bson:"message" json:"message"`

	Location  *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	IPAddress string    `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
