package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin upserts the bootstrap administrator. Every other admin is
// created by an existing one, so a fresh deployment needs this account to
// exist before anyone can log in. The seeded admin is created with its
// email already confirmed.
func SeedAdmin(ctx context.Context, adminsCol *mongo.Collection, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":           "Administrator",
			"email":          email,
			"passwordHash":   string(hash),
			"emailConfirmed": true,
			"createdAt":      now,
			"updatedAt":      now,
		},
	}

	res, err := adminsCol.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if res.UpsertedCount == 1 {
		log.Println("Admin user seeded:", email)
	} else {
		log.Println("Admin user already exists:", email)
	}
	return nil
}
