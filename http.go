package inmo

import (
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/Joseargentina/go-inmo/middleware/sessionware"
)

// SessionContextKey is the locals key the session middleware stores
// validated claims under.
const SessionContextKey = "session"

// RouteAuthenticator glues the Authenticator to the HTTP surface:
// cookie handling, the session middleware, and the auth guard.
type RouteAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := time.Hour
	if cfg.GetTokenTTL() > 0 {
		cookieDuration = cfg.GetTokenTTL()
	}

	return &RouteAuthenticator{
		auth:           auther,
		cfg:            cfg,
		cookieDuration: cookieDuration,
		Logger:         defLogger{},
	}, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Login exchanges credentials for a token and sets the session cookie.
func (a *RouteAuthenticator) Login(c *fiber.Ctx, payload LoginPayload) (string, error) {
	token, err := a.auth.Login(c.UserContext(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return token, nil
}

// Register creates the account and sets the session cookie so the new
// user does not have to log in separately.
func (a *RouteAuthenticator) Register(c *fiber.Ctx, msg RegisterUserMessage) (string, error) {
	token, err := a.auth.Register(c.UserContext(), msg)
	if err != nil {
		a.Logger.Error("Register error: %s", err)
		return "", err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return token, nil
}

func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	a.cookieDel(c, a.cfg.GetCookieName())
}

// WithSession resolves the session token on every request. A missing
// or invalid token is not an error here, the request just continues
// anonymous; guards decide later whether a session is required.
func (a *RouteAuthenticator) WithSession() fiber.Handler {
	return sessionware.New(sessionware.Config{
		Validator:   &validatorAdapter{auth: a.auth},
		ContextKey:  SessionContextKey,
		TokenLookup: "cookie:" + a.cfg.GetCookieName() + ",header:" + fiber.HeaderAuthorization,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if !goerrors.Is(err, sessionware.ErrTokenMissing) {
				a.Logger.Debug("session resolution failed: %s", err)
			}
			return c.Next()
		},
	})
}

// RequireAuth rejects requests that carry no resolved session.
func (a *RouteAuthenticator) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := SessionFromContext(c); err != nil {
			return RespondError(c, a.Logger, ErrUnableToFindSession)
		}
		return c.Next()
	}
}

func (a *RouteAuthenticator) setCookieToken(c *fiber.Ctx, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetCookieName(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: "Strict",
	})
}

func (a *RouteAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: "Strict",
	})
}

// validatorAdapter lets the middleware package validate tokens without
// importing this one.
type validatorAdapter struct {
	auth Authenticator
}

func (v *validatorAdapter) Validate(tokenString string) (sessionware.AuthClaims, error) {
	session, err := v.auth.SessionFromToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &claimsAdapter{session: session}, nil
}

type claimsAdapter struct {
	session Session
}

func (c *claimsAdapter) Subject() string      { return c.session.GetUsername() }
func (c *claimsAdapter) Username() string     { return c.session.GetUsername() }
func (c *claimsAdapter) Email() string        { return c.session.GetEmail() }
func (c *claimsAdapter) Expires() *time.Time  { return c.session.GetExpiration() }
func (c *claimsAdapter) IssuedAt() *time.Time { return c.session.GetIssuedAt() }

// SessionFromContext pulls the session stored by WithSession. Requests
// that never carried a valid token have none.
func SessionFromContext(c *fiber.Ctx) (*SessionObject, error) {
	claims, ok := c.Locals(SessionContextKey).(sessionware.AuthClaims)
	if !ok || claims == nil {
		return nil, ErrUnableToFindSession
	}

	return &SessionObject{
		Username:       claims.Username(),
		Email:          claims.Email(),
		IssuedAt:       claims.IssuedAt(),
		ExpirationDate: claims.Expires(),
	}, nil
}

// RespondError maps an error onto a JSON response. Internal failures
// get a generic body; the detail goes to the log only.
func RespondError(c *fiber.Ctx, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	status := HTTPStatus(err)

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		logger.Error("unhandled error: %s", err)
		return c.Status(status).JSON(fiber.Map{
			"message": "internal server error",
		})
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("internal error: %s metadata=%s", rich.Message, print.MaybePrettyJSON(rich.Metadata))
		return c.Status(status).JSON(fiber.Map{
			"message": "internal server error",
		})
	}

	if rich.Category == goerrors.CategoryValidation {
		if fields := rich.ValidationMap(); len(fields) > 0 {
			return c.Status(status).JSON(fiber.Map{
				"message": rich.Message,
				"errors":  fields,
			})
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"message": rich.Message,
	})
}

// NotFoundHandler answers routes nothing else matched.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "route not found",
		})
	}
}
