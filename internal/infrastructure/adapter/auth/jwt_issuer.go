package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
)

// JWTIssuer implements TokenIssuer with HMAC-signed JWTs. The subject claim
// carries the user id.
type JWTIssuer struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTIssuer creates a token issuer signing with the given secret
func NewJWTIssuer(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) gateway.TokenIssuer {
	return &JWTIssuer{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue signs a token for the user
func (i *JWTIssuer) Issue(userID uint64) (string, error) {
	now := i.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded user id
func (i *JWTIssuer) Verify(tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, errs.ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, errs.ErrInvalidToken
	}
	return userID, nil
}
