package utils

import (
	"testing"
	"time"

	"examprep/backend/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret", TokenTTLMinutes: 15}
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateAccessToken("a@x.com", cfg)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := ParseAccessToken(token, cfg)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestAccessTokenExpiry(t *testing.T) {
	cfg := testConfig()

	// Still inside the TTL window.
	valid := signedToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	_, err := ParseAccessToken(valid, cfg)
	assert.NoError(t, err)

	// Past expiry.
	expired := signedToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	_, err = ParseAccessToken(expired, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateAccessToken("a@x.com", cfg)
	assert.NoError(t, err)

	raw := []byte(token)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}

	_, err = ParseAccessToken(string(raw), cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateAccessToken("a@x.com", testConfig())
	assert.NoError(t, err)

	_, err = ParseAccessToken(token, &config.Config{JWTSecret: "othersecret", TokenTTLMinutes: 15})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSubjectRejected(t *testing.T) {
	cfg := testConfig()

	token := signedToken(t, cfg.JWTSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	_, err := ParseAccessToken(token, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
