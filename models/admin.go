package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Admin struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	Phone        string        `bson:"phone,omitempty" json:"phone,omitempty"`

	// Admins are created by other admins and must prove mailbox ownership
	// before they can log in.
	EmailConfirmed bool `bson:"emailConfirmed" json:"emailConfirmed"`

	CreatedBy bson.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
