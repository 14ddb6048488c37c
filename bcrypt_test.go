package inmo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	inmo "github.com/Joseargentina/go-inmo"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Run("accepts costs inside the supported range", func(t *testing.T) {
		hasher, err := inmo.NewBcryptHasher(bcrypt.MinCost)
		assert.NoError(t, err)
		assert.NotNil(t, hasher)
	})

	t.Run("rejects cost below minimum", func(t *testing.T) {
		hasher, err := inmo.NewBcryptHasher(bcrypt.MinCost - 1)
		assert.Error(t, err)
		assert.Nil(t, hasher)
	})

	t.Run("rejects cost above maximum", func(t *testing.T) {
		hasher, err := inmo.NewBcryptHasher(bcrypt.MaxCost + 1)
		assert.Error(t, err)
		assert.Nil(t, hasher)
	})
}

func TestBcryptHasher_HashPassword(t *testing.T) {
	hasher, err := inmo.NewBcryptHasher(bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("hashes a password", func(t *testing.T) {
		hash, err := hasher.HashPassword("sup3r-secret")

		assert.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "sup3r-secret", hash)
	})

	t.Run("produces different hashes for the same input", func(t *testing.T) {
		first, err := hasher.HashPassword("sup3r-secret")
		assert.NoError(t, err)

		second, err := hasher.HashPassword("sup3r-secret")
		assert.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		hash, err := hasher.HashPassword("")

		assert.Error(t, err)
		assert.Empty(t, hash)
		assert.ErrorIs(t, err, inmo.ErrNoEmptyString)
	})
}

func TestBcryptHasher_ComparePasswordAndHash(t *testing.T) {
	hasher, err := inmo.NewBcryptHasher(bcrypt.MinCost)
	assert.NoError(t, err)

	hash, err := hasher.HashPassword("sup3r-secret")
	assert.NoError(t, err)

	t.Run("accepts the matching password", func(t *testing.T) {
		assert.NoError(t, hasher.ComparePasswordAndHash("sup3r-secret", hash))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		err := hasher.ComparePasswordAndHash("not-the-password", hash)

		assert.Error(t, err)
		assert.ErrorIs(t, err, inmo.ErrMismatchedHashAndPassword)
	})

	t.Run("rejects a malformed hash", func(t *testing.T) {
		err := hasher.ComparePasswordAndHash("sup3r-secret", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, inmo.ErrMismatchedHashAndPassword)
	})
}
