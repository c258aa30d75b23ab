// Package auth provides token creation, verification and password
// hashing for the account collaborator that sits in front of the
// booking engine.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT together with its expiry.  Access
// tokens are short-lived and sent in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID string // subject claim, e.g. "U3"
	Name   string // login name
	Role   string // ADMIN or CUSTOMER
}

// ErrInvalidToken is returned by Verify for any token that fails
// parsing, signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT asserting the given
// identity.  Claims: sub (user id), name, role, exp and iat.
func NewAccessToken(secret string, id Identity, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  id.UserID,
		"name": id.Name,
		"role": id.Role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify parses and validates a token string and returns the identity
// it asserts.  Tokens signed with anything but HMAC are rejected.
func Verify(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	id := Identity{}
	if id.UserID, ok = claims["sub"].(string); !ok || id.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	if id.Name, ok = claims["name"].(string); !ok {
		return Identity{}, ErrInvalidToken
	}
	if id.Role, ok = claims["role"].(string); !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
