package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// These tests run against a real server; set TEST_MONGODB_URI to enable
// them, e.g. TEST_MONGODB_URI=mongodb://localhost:27017 go test ./store/...
func testCollection(t *testing.T) *mongo.Collection {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	col := client.Database("liftsforlife_test").Collection("credentials_" + bson.NewObjectID().Hex())
	t.Cleanup(func() { _ = col.Drop(context.Background()) })

	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)
	return col
}

func TestCreateAndLogin(t *testing.T) {
	creds := NewCredentials(testCollection(t), false)
	ctx := context.Background()

	id, err := creds.Create(ctx, "amy@example.com", "s3cret-pass", bson.M{"name": "Amy"})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	p, err := creds.FindByEmail(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.False(t, p.EmailConfirmed)
	assert.NotEqual(t, "s3cret-pass", p.PasswordHash, "password must be stored hashed")

	// Wrong password and unknown email both fail, differently.
	_, err = creds.VerifyPassword(ctx, "amy@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = creds.VerifyPassword(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := creds.VerifyPassword(ctx, "amy@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	_, err := creds.Create(ctx, "dup@example.com", "password-1", bson.M{})
	require.NoError(t, err)

	_, err = creds.Create(ctx, "dup@example.com", "password-2", bson.M{})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestConfirmedByDefault(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	id, err := creds.Create(ctx, "client@example.com", "password-1", bson.M{})
	require.NoError(t, err)

	p, err := creds.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.EmailConfirmed)
}

func TestMarkEmailConfirmedIsIdempotent(t *testing.T) {
	creds := NewCredentials(testCollection(t), false)
	ctx := context.Background()

	id, err := creds.Create(ctx, "amy@example.com", "s3cret-pass", bson.M{})
	require.NoError(t, err)

	require.NoError(t, creds.MarkEmailConfirmed(ctx, id))
	require.NoError(t, creds.MarkEmailConfirmed(ctx, id))

	p, err := creds.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.EmailConfirmed)

	assert.ErrorIs(t, creds.MarkEmailConfirmed(ctx, bson.NewObjectID()), ErrNotFound)
}

func TestSetPassword(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	id, err := creds.Create(ctx, "amy@example.com", "old-password", bson.M{})
	require.NoError(t, err)

	require.NoError(t, creds.SetPassword(ctx, id, "new-password"))

	_, err = creds.VerifyPassword(ctx, "amy@example.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = creds.VerifyPassword(ctx, "amy@example.com", "new-password")
	assert.NoError(t, err)
}

func TestChangeEmailDropsConfirmation(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	id, err := creds.Create(ctx, "old@example.com", "s3cret-pass", bson.M{})
	require.NoError(t, err)

	require.NoError(t, creds.ChangeEmail(ctx, id, "new@example.com"))

	p, err := creds.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", p.Email)
	assert.False(t, p.EmailConfirmed, "a changed address starts unverified")

	_, err = creds.FindByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeEmailToTakenAddress(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	_, err := creds.Create(ctx, "taken@example.com", "s3cret-pass", bson.M{})
	require.NoError(t, err)
	id, err := creds.Create(ctx, "mine@example.com", "s3cret-pass", bson.M{})
	require.NoError(t, err)

	assert.ErrorIs(t, creds.ChangeEmail(ctx, id, "taken@example.com"), ErrDuplicateEmail)

	// The losing update must not have touched the account.
	p, err := creds.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mine@example.com", p.Email)
	assert.True(t, p.EmailConfirmed)
}

func TestDelete(t *testing.T) {
	creds := NewCredentials(testCollection(t), true)
	ctx := context.Background()

	id, err := creds.Create(ctx, "gone@example.com", "s3cret-pass", bson.M{})
	require.NoError(t, err)

	require.NoError(t, creds.Delete(ctx, id))
	assert.ErrorIs(t, creds.Delete(ctx, id), ErrNotFound)
	_, err = creds.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
