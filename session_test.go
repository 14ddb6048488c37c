package inmo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	inmo "github.com/Joseargentina/go-inmo"
)

func TestSessionObject_Getters(t *testing.T) {
	iat := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	exp := iat.Add(time.Hour)

	session := &inmo.SessionObject{
		Username:       "pepe",
		Email:          "pepe@example.com",
		Issuer:         "inmobiliaria-api",
		IssuedAt:       &iat,
		ExpirationDate: &exp,
	}

	assert.Equal(t, "pepe", session.GetUsername())
	assert.Equal(t, "pepe@example.com", session.GetEmail())
	assert.Equal(t, "inmobiliaria-api", session.GetIssuer())
	assert.Equal(t, &iat, session.GetIssuedAt())
	assert.Equal(t, &exp, session.GetExpiration())
}

func TestSessionObject_String(t *testing.T) {
	t.Run("renders the main attributes", func(t *testing.T) {
		iat := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
		session := inmo.SessionObject{
			Username: "pepe",
			Email:    "pepe@example.com",
			Issuer:   "inmobiliaria-api",
			IssuedAt: &iat,
		}

		out := session.String()
		assert.Contains(t, out, "user=pepe")
		assert.Contains(t, out, "email=pepe@example.com")
		assert.Contains(t, out, "iss=inmobiliaria-api")
	})

	t.Run("tolerates missing issued at", func(t *testing.T) {
		session := inmo.SessionObject{Username: "pepe"}

		assert.Contains(t, session.String(), "iat=<nil>")
	})
}

func TestJWTClaims(t *testing.T) {
	t.Run("username falls back to subject", func(t *testing.T) {
		claims := &inmo.JWTClaims{}
		claims.RegisteredClaims.Subject = "pepe"

		assert.Equal(t, "pepe", claims.Username())
	})

	t.Run("username claim wins over subject", func(t *testing.T) {
		claims := &inmo.JWTClaims{User: "pepa"}
		claims.RegisteredClaims.Subject = "pepe"

		assert.Equal(t, "pepa", claims.Username())
	})

	t.Run("times are zero when claims are absent", func(t *testing.T) {
		claims := &inmo.JWTClaims{}

		assert.True(t, claims.Expires().IsZero())
		assert.True(t, claims.IssuedAt().IsZero())
	})
}
