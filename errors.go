package inmo

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds flags a failed username/password check
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeUsernameTaken flags a registration with a known username
	TextCodeUsernameTaken = "USERNAME_TAKEN"
	// TextCodeEmailInUse flags a registration with a known email
	TextCodeEmailInUse = "EMAIL_IN_USE"
	// TextCodeTokenExpired flags an expired session token
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed flags a token we could not parse or verify
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeSessionNotFound flags a request without a usable session
	TextCodeSessionNotFound = "SESSION_NOT_FOUND"
	// TextCodeClaimsMappingError flags claims we could not map to a session
	TextCodeClaimsMappingError = "CLAIMS_MAPPING_ERROR"
	// TextCodeEmptyPassword flags an empty plaintext password
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
	// TextCodeInvalidProductID flags a malformed product identifier
	TextCodeInvalidProductID = "INVALID_PRODUCT_ID"
	// TextCodeEmptySearchTerm flags a name search without a term
	TextCodeEmptySearchTerm = "EMPTY_SEARCH_TERM"
)

// ErrIdentityNotFound is returned when a login names an unknown user.
// It maps to 400 like a credentials mismatch so the route layer does
// not reveal which of the two happened.
var ErrIdentityNotFound = goerrors.New("user not found", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned for a failed password check
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeBadRequest)

// ErrUsernameTaken is returned when registering an existing username
var ErrUsernameTaken = goerrors.New("username taken", goerrors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(goerrors.CodeBadRequest)

// ErrEmailInUse is returned when registering an existing email
var ErrEmailInUse = goerrors.New("email in use", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailInUse).
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired is returned when a session token is past its expiry
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a session token fails to parse or verify
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToFindSession is the error when the request has no session
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToMapClaims is the error when we cannot map claims to a session
var ErrUnableToMapClaims = goerrors.New("unable to map claims", goerrors.CategoryAuth).
	WithTextCode(TextCodeClaimsMappingError).
	WithCode(goerrors.CodeUnauthorized)

// ErrUserNotFound is the store-level miss for user lookups
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrProductNotFound is the store-level miss for product lookups
var ErrProductNotFound = goerrors.New("product not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrInvalidProductID is returned for ids the store cannot parse
var ErrInvalidProductID = goerrors.New("invalid product id", goerrors.CategoryBadInput).
	WithTextCode(TextCodeInvalidProductID).
	WithCode(goerrors.CodeBadRequest)

// ErrEmptySearchTerm is returned for a name search without a term
var ErrEmptySearchTerm = goerrors.New("search term must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptySearchTerm).
	WithCode(goerrors.CodeBadRequest)

// HTTPStatus resolves the response status for an error. Structured
// errors carry their own code; anything else is an internal failure.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return http.StatusInternalServerError
	}

	if rich.Code > 0 {
		return rich.Code
	}

	switch rich.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput, goerrors.CategoryConflict:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed session token")
}
