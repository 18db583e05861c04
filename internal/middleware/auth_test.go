package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

func newAuthApp(tokens *token.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens), func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		return c.JSON(fiber.Map{"email": claims.Email})
	})
	return app
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app := newAuthApp(token.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	app := newAuthApp(token.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthBadToken(t *testing.T) {
	app := newAuthApp(token.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	app := newAuthApp(token.NewManager("secret", time.Hour))

	other := token.NewManager("other-secret", time.Hour)
	signed, err := other.Mint("id1", "a@x.com", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tokens := token.NewManager("secret", -time.Minute)
	app := newAuthApp(tokens)

	signed, err := tokens.Mint("id1", "a@x.com", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	app := newAuthApp(tokens)

	signed, err := tokens.Mint("id1", "a@x.com", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
