package inmo

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Auther registers identities and exchanges credentials for session
// tokens.
type Auther struct {
	users    Users
	hasher   PasswordHasher
	tokens   TokenService
	logger   Logger
	activity ActivitySink
}

var _ Authenticator = (*Auther)(nil)

func NewAuthenticator(users Users, hasher PasswordHasher, tokens TokenService) *Auther {
	return &Auther{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		logger:   defLogger{},
		activity: noopActivitySink{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

func (a *Auther) WithActivitySink(sink ActivitySink) *Auther {
	a.activity = normalizeActivitySink(sink)
	return a
}

// Register creates the user and returns a signed session token so the
// caller is logged in right after signing up.
func (a *Auther) Register(ctx context.Context, msg RegisterUserMessage) (string, error) {
	username := strings.TrimSpace(msg.Username)
	email := strings.TrimSpace(msg.Email)

	if username == "" || email == "" || msg.Password == "" {
		return "", goerrors.New("username, email and password are required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := a.users.GetByUsername(ctx, username); err == nil {
		a.recordActivity(ctx, ActivityEventRegisterFailure, username, map[string]any{"reason": "username taken"})
		return "", ErrUsernameTaken
	} else if !goerrors.IsNotFound(err) {
		return "", err
	}

	if _, err := a.users.GetByEmail(ctx, email); err == nil {
		a.recordActivity(ctx, ActivityEventRegisterFailure, username, map[string]any{"reason": "email in use"})
		return "", ErrEmailInUse
	} else if !goerrors.IsNotFound(err) {
		return "", err
	}

	hash, err := a.hasher.HashPassword(msg.Password)
	if err != nil {
		return "", err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := a.users.Create(ctx, user); err != nil {
		a.recordActivity(ctx, ActivityEventRegisterFailure, username, map[string]any{"reason": "store error"})
		return "", err
	}

	token, err := a.tokens.Generate(username, "")
	if err != nil {
		return "", err
	}

	a.logger.Info("registered user %s", username)
	a.recordActivity(ctx, ActivityEventRegisterSuccess, username, nil)

	return token, nil
}

// Login verifies credentials and returns a signed session token. An
// unknown username and a wrong password both surface as invalid
// credentials.
func (a *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", goerrors.New("username and password are required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	user, err := a.users.GetByUsername(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			a.recordActivity(ctx, ActivityEventLoginFailure, identifier, map[string]any{"reason": "unknown user"})
			return "", ErrIdentityNotFound
		}
		return "", err
	}

	if err := a.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Debug("login failed for %s: %s", identifier, err)
		a.recordActivity(ctx, ActivityEventLoginFailure, identifier, map[string]any{"reason": "bad password"})
		return "", ErrMismatchedHashAndPassword
	}

	token, err := a.tokens.Generate(user.Username, user.Email)
	if err != nil {
		return "", err
	}

	a.recordActivity(ctx, ActivityEventLoginSuccess, user.Username, nil)

	return token, nil
}

// SessionFromToken validates the raw token and maps its claims into a
// session object.
func (a *Auther) SessionFromToken(token string) (Session, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	return sessionFromAuthClaims(claims)
}

func (a *Auther) recordActivity(ctx context.Context, eventType ActivityEventType, username string, meta map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		Username:   username,
		Metadata:   meta,
		OccurredAt: time.Now(),
	}
	if err := a.activity.Record(ctx, event); err != nil {
		a.logger.Warn("activity sink rejected %s: %s", eventType, err)
	}
}
