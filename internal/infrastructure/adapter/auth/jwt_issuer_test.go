package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	mockcore "github.com/rafaelmeira/boatvest/mocks/port/core"
)

func newTestIssuer(secret string, ttl time.Duration, now time.Time) *JWTIssuer {
	tp := new(mockcore.MockTimeProvider)
	tp.On("Now").Return(now)
	return NewJWTIssuer(secret, ttl, tp).(*JWTIssuer)
}

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer := newTestIssuer("test-secret", 72*time.Hour, time.Now())

	token, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestJWTIssuerVerifyRejections(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer("test-secret", 72*time.Hour, now)

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := issuer.Issue(42)
		require.NoError(t, err)

		_, err = issuer.Verify(token[:len(token)-4] + "AAAA")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := newTestIssuer("other-secret", 72*time.Hour, now)
		token, err := other.Issue(42)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestIssuer("test-secret", time.Hour, now.Add(-2*time.Hour))
		token, err := expired.Issue(42)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "joana",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		token, err := signed.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("zero subject", func(t *testing.T) {
		signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "0",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		token, err := signed.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})
}
