package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func TestWithAuthRequiresUser(t *testing.T) {
	app := fiber.New()
	app.Get("/me", WithAuth(okHandler, AuthOptions{RequireUser: true}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWithAuthAllowsAuthenticatedUser(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "student1@email.com")
		c.Locals("user_role", "student")
		return c.Next()
	})
	app.Get("/me", WithAuth(okHandler, AuthOptions{RequireUser: true}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithAuthEnforcesRole(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "student1@email.com")
		c.Locals("user_role", "student")
		return c.Next()
	})
	app.Post("/courses", WithAuth(okHandler, AuthOptions{Role: AuthRoleTeacher}))
	app.Post("/enroll", WithAuth(okHandler, AuthOptions{Role: AuthRoleStudent}))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/courses", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/enroll", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithAuthAnonymousAccess(t *testing.T) {
	app := fiber.New()
	app.Get("/courses", WithAuth(okHandler, AuthOptions{}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/courses", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
