package inmo

import (
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with a configurable cost factor.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher validates the cost up front so a bad SALT_ROUNDS
// value fails at startup instead of on the first registration.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, goerrors.New("bcrypt cost outside supported range", goerrors.CategoryValidation).
			WithMetadata(map[string]any{
				"cost": cost,
				"min":  bcrypt.MinCost,
				"max":  bcrypt.MaxCost,
			})
	}
	return &BcryptHasher{cost: cost}, nil
}

// HashPassword will generate a password hash. The salt is generated
// internally and embedded in the returned value.
func (h *BcryptHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	return string(hash), nil
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password. A mismatch is not an internal failure;
// only a malformed hash is.
func (h *BcryptHasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if goerrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "malformed password hash")
	}
	return nil
}
