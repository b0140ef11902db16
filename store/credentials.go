// Package store holds the credential layer shared by the two principal
// kinds. Admin and client accounts live in different collections with
// different profile fields, but hashing, password verification,
// confirmation flags and email changes follow identical rules, so one
// type serves both and is instantiated twice in main.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/liftsforlife/backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Principal is the credential-relevant slice of an account document.
// Profile fields are decoded elsewhere; bson ignores what is not listed.
type Principal struct {
	ID             bson.ObjectID `bson:"_id"`
	Email          string        `bson:"email"`
	PasswordHash   string        `bson:"passwordHash"`
	EmailConfirmed bool          `bson:"emailConfirmed"`
}

// Credentials wraps one account collection. confirmedByDefault reflects
// the onboarding asymmetry: admins must prove mailbox ownership, clients
// are created by an admin and trusted immediately.
type Credentials struct {
	col                *mongo.Collection
	confirmedByDefault bool
}

func NewCredentials(col *mongo.Collection, confirmedByDefault bool) *Credentials {
	return &Credentials{col: col, confirmedByDefault: confirmedByDefault}
}

func (s *Credentials) Collection() *mongo.Collection { return s.col }

// Create hashes the password and inserts a new account. fields carries the
// kind-specific profile data; email, passwordHash, emailConfirmed and the
// timestamps are owned by the store. A duplicate-key write error is the
// authoritative duplicate signal - there is no pre-insert existence check,
// the unique index decides races.
func (s *Credentials) Create(ctx context.Context, email, password string, fields bson.M) (bson.ObjectID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return bson.ObjectID{}, err
	}

	now := time.Now().UTC()
	doc := bson.M{
		"_id":            bson.NewObjectID(),
		"email":          email,
		"passwordHash":   string(hash),
		"emailConfirmed": s.confirmedByDefault,
		"createdAt":      now,
		"updatedAt":      now,
	}
	for k, v := range fields {
		doc[k] = v
	}

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return bson.ObjectID{}, ErrDuplicateEmail
		}
		return bson.ObjectID{}, err
	}
	return res.InsertedID.(bson.ObjectID), nil
}

// FindByEmail returns the credential slice for an account. Email matching
// is exact, as stored.
func (s *Credentials) FindByEmail(ctx context.Context, email string) (Principal, error) {
	var p Principal
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Principal{}, ErrNotFound
	}
	if err != nil {
		return Principal{}, err
	}
	return p, nil
}

// FindByID returns the credential slice for an account by id.
func (s *Credentials) FindByID(ctx context.Context, id bson.ObjectID) (Principal, error) {
	var p Principal
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Principal{}, ErrNotFound
	}
	if err != nil {
		return Principal{}, err
	}
	return p, nil
}

// VerifyPassword looks the account up by email and compares the plaintext
// against the stored hash. bcrypt's comparison runs in constant time with
// respect to the password content; plain byte equality is never used.
func (s *Credentials) VerifyPassword(ctx context.Context, email, password string) (Principal, error) {
	p, err := s.FindByEmail(ctx, email)
	if err != nil {
		return Principal{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return p, nil
}

// SetPassword rehashes and overwrites. Previously issued session tokens
// stay valid until their natural expiry; there is no revocation list.
func (s *Credentials) SetPassword(ctx context.Context, id bson.ObjectID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"passwordHash": string(hash),
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkEmailConfirmed flags the mailbox as verified. Confirming twice is a
// no-op, not an error.
func (s *Credentials) MarkEmailConfirmed(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"emailConfirmed": true,
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangeEmail swaps the address and drops the confirmation flag in the
// same update. The mutation happens before the new mailbox is verified;
// until the owner follows the emailed link the account sits unconfirmed.
func (s *Credentials) ChangeEmail(ctx context.Context, id bson.ObjectID, newEmail string) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"email":          newEmail,
		"emailConfirmed": false,
		"updatedAt":      time.Now().UTC(),
	}})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account document.
func (s *Credentials) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
