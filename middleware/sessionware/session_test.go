package sessionware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Joseargentina/go-inmo/middleware/sessionware"
)

// stubClaims implements sessionware.AuthClaims for testing
type stubClaims struct {
	username string
}

func (s *stubClaims) Subject() string      { return s.username }
func (s *stubClaims) Username() string     { return s.username }
func (s *stubClaims) Email() string        { return s.username + "@example.com" }
func (s *stubClaims) Expires() *time.Time  { return nil }
func (s *stubClaims) IssuedAt() *time.Time { return nil }

// stubValidator accepts a single token value
type stubValidator struct {
	accept string
}

func (v *stubValidator) Validate(tokenString string) (sessionware.AuthClaims, error) {
	if tokenString == v.accept {
		return &stubClaims{username: "pepe"}, nil
	}
	return nil, errors.New("token is malformed")
}

func newApp(cfg sessionware.Config) *fiber.App {
	app := fiber.New()
	app.Use(sessionware.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		claims, ok := c.Locals("session").(sessionware.AuthClaims)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(claims.Username())
	})
	return app
}

func TestNew(t *testing.T) {
	t.Run("stores claims for a valid cookie token", func(t *testing.T) {
		app := newApp(sessionware.Config{
			Validator:   &stubValidator{accept: "good-token"},
			TokenLookup: "cookie:access_token",
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good-token"})

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token hits the error handler", func(t *testing.T) {
		app := newApp(sessionware.Config{
			Validator:   &stubValidator{accept: "good-token"},
			TokenLookup: "cookie:access_token",
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid token hits the error handler", func(t *testing.T) {
		app := newApp(sessionware.Config{
			Validator:   &stubValidator{accept: "good-token"},
			TokenLookup: "cookie:access_token",
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "bad-token"})

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("custom error handler can continue anonymously", func(t *testing.T) {
		app := newApp(sessionware.Config{
			Validator:   &stubValidator{accept: "good-token"},
			TokenLookup: "cookie:access_token",
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return c.Next()
			},
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("filter skips the middleware", func(t *testing.T) {
		app := newApp(sessionware.Config{
			Validator:   &stubValidator{accept: "good-token"},
			TokenLookup: "cookie:access_token",
			Filter: func(c *fiber.Ctx) bool {
				return true
			},
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("panics without a validator", func(t *testing.T) {
		assert.Panics(t, func() {
			sessionware.New(sessionware.Config{})
		})
	})
}

func TestGetExtractors(t *testing.T) {
	t.Run("builds one extractor per lookup entry", func(t *testing.T) {
		extractors := sessionware.GetExtractors("cookie:access_token,header:Authorization,query:token")
		assert.Len(t, extractors, 3)
	})

	t.Run("ignores malformed entries", func(t *testing.T) {
		extractors := sessionware.GetExtractors("cookie:access_token,bogus")
		assert.Len(t, extractors, 1)
	})
}

func TestExtractRawToken(t *testing.T) {
	run := func(t *testing.T, lookup string, prepare func(*http.Request)) (string, int) {
		t.Helper()

		var got string
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			raw, err := sessionware.ExtractRawToken(c, sessionware.GetExtractors(lookup))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).SendString(err.Error())
			}
			got = raw
			return c.SendString("ok")
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		prepare(req)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		return got, resp.StatusCode
	}

	t.Run("extracts from cookie", func(t *testing.T) {
		got, status := run(t, "cookie:access_token", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "cookie-token", got)
	})

	t.Run("extracts a bearer header", func(t *testing.T) {
		got, status := run(t, "header:Authorization", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer header-token")
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "header-token", got)
	})

	t.Run("extracts from query", func(t *testing.T) {
		var got string
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			raw, err := sessionware.ExtractRawToken(c, sessionware.GetExtractors("query:token"))
			assert.NoError(t, err)
			got = raw
			return c.SendString("ok")
		})

		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/?token=query-token", nil))
		assert.NoError(t, err)
		assert.Equal(t, "query-token", got)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		got, status := run(t, "cookie:access_token,header:Authorization", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
			req.Header.Set("Authorization", "Bearer header-token")
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "cookie-token", got)
	})

	t.Run("falls back to the header when the cookie is absent", func(t *testing.T) {
		got, status := run(t, "cookie:access_token,header:Authorization", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer header-token")
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "header-token", got)
	})

	t.Run("reports a missing token", func(t *testing.T) {
		_, status := run(t, "cookie:access_token", func(req *http.Request) {})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
