package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Kind identifies which principal population a token belongs to.
type Kind string

const (
	KindAdmin  Kind = "admin"
	KindClient Kind = "client"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, wrong principal kind, elapsed expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 tokens for exactly one principal
// kind. Admins and clients get separate issuers with distinct secrets, so
// a token minted for one kind never verifies against the other. The same
// token format serves login sessions and emailed confirmation/reset links.
type TokenIssuer struct {
	kind   Kind
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(kind Kind, secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{kind: kind, secret: []byte(secret), ttl: ttl}
}

func (i *TokenIssuer) Kind() Kind { return i.kind }

// Issue signs {kind, id} with this issuer's secret and a ttl-bound expiry.
func (i *TokenIssuer) Issue(id bson.ObjectID) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: i.kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, structure, kind and expiry and returns the
// principal id. It deliberately does not check the principal still exists;
// callers re-fetch and handle not-found themselves.
func (i *TokenIssuer) Verify(tokenStr string) (bson.ObjectID, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return bson.ObjectID{}, ErrInvalidToken
	}
	if claims.Kind != i.kind {
		return bson.ObjectID{}, ErrInvalidToken
	}
	id, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidToken
	}
	return id, nil
}
