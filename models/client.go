package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Client struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string        `bson:"firstName" json:"firstName"`
	LastName     string        `bson:"lastName" json:"lastName"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	Address      string        `bson:"address" json:"address"`
	PhoneNumber  string        `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Note         string        `bson:"note,omitempty" json:"note,omitempty"`
	Newsletter   bool          `bson:"newsletter" json:"newsletter"`

	Orders []bson.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`

	// Clients are onboarded by an admin, so their mailbox is trusted from
	// the start. Changing the email drops this back to false.
	EmailConfirmed bool `bson:"emailConfirmed" json:"emailConfirmed"`

	CreatedBy bson.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
