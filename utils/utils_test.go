package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Fauteuil Élévateur 3000", "fauteuil-elevateur-3000"},
		{"Monte-escalier droit", "monte-escalier-droit"},
		{"  Lève-personne  ", "leve-personne"},
		{"Chaise (pliable) #2", "chaise-pliable-2"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.name), "input %q", tc.name)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	assert.True(t, IsDuplicateKey(dup))

	legacy := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11001}}}
	assert.True(t, IsDuplicateKey(legacy))

	other := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121}}}
	assert.False(t, IsDuplicateKey(other))

	assert.True(t, IsDuplicateKey(errors.New(`write exception: E11000 duplicate key error collection: liftsforlife.admins index: email_1`)))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 10, ParseIntDefault("", 10))
	assert.Equal(t, 10, ParseIntDefault("abc", 10))
	assert.Equal(t, 3, ParseIntDefault("3", 10))
	assert.Equal(t, -1, ParseIntDefault("-1", 10))
}
