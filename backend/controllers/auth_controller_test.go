package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	resp := doJSON(t, "POST", "/register", map[string]string{
		"email":    "newuser@example.com",
		"password": "password123",
		"name":     "New User",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	userInfo := body["user_info"].(map[string]interface{})
	assert.Equal(t, "newuser@example.com", userInfo["email"])
	assert.NotEmpty(t, userInfo["user_id"])

	token := body["token"].(map[string]interface{})
	assert.NotEmpty(t, token["access_token"])
	assert.Equal(t, "bearer", token["token_type"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	payload := map[string]string{
		"email":    "dup@example.com",
		"password": "password123",
		"name":     "First",
	}

	resp := doJSON(t, "POST", "/register", payload, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, "POST", "/register", payload, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestRegisterMissingFields(t *testing.T) {
	resp := doJSON(t, "POST", "/register", map[string]string{"email": "only@example.com"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	registerUser(t, "a@x.com", "right", "A")

	resp := doFormLogin(t, "a@x.com", "right")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "bearer", body["token_type"])

	// The decoded subject must equal the login email.
	token, err := jwt.Parse(body["access_token"].(string), func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "a@x.com", claims["sub"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	registerUser(t, "uniform@x.com", "right", "U")

	wrongPassword := doFormLogin(t, "uniform@x.com", "wrong")
	unknownEmail := doFormLogin(t, "nouser@x.com", "anything")

	assert.Equal(t, fiber.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, unknownEmail.StatusCode)
	assert.Equal(t, "Bearer", wrongPassword.Header.Get("WWW-Authenticate"))
	assert.Equal(t, "Bearer", unknownEmail.Header.Get("WWW-Authenticate"))

	// Identical error shape: no hint which part of the credential failed.
	assert.Equal(t, decodeBody(t, wrongPassword), decodeBody(t, unknownEmail))
}

func TestMe(t *testing.T) {
	token := registerUser(t, "me@example.com", "password123", "Me User")

	resp := doJSON(t, "GET", "/users/me", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "me@example.com", body["email"])
	assert.Equal(t, "Me User", body["name"])
	assert.NotContains(t, body, "password_hash")
}

func TestMeWithoutToken(t *testing.T) {
	resp := doJSON(t, "GET", "/users/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithTamperedToken(t *testing.T) {
	token := registerUser(t, "tamper@example.com", "password123", "T")

	// Flip a byte in the signature.
	raw := []byte(token)
	last := len(raw) - 1
	if raw[last] == 'A' {
		raw[last] = 'B'
	} else {
		raw[last] = 'A'
	}

	resp := doJSON(t, "GET", "/users/me", nil, string(raw))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotContains(t, body, "email")
}

func TestMeWithTokenForDeletedUser(t *testing.T) {
	token := registerUser(t, "ghost@example.com", "password123", "G")

	db.Exec("DELETE FROM users WHERE email = ?", "ghost@example.com")

	resp := doJSON(t, "GET", "/users/me", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
