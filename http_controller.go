package inmo

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// AuthControllerRoutes holds the paths the controller mounts.
type AuthControllerRoutes struct {
	Register string
	Login    string
	Logout   string
	Profile  string
}

// AuthController exposes registration, login, logout and the profile
// endpoint.
type AuthController struct {
	Logger Logger
	Routes *AuthControllerRoutes
	Auther *RouteAuthenticator
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register: "/registro",
			Login:    "/login",
			Logout:   "/logout",
			Profile:  "/perfil",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

func WithAuthRouteAuthenticator(auther *RouteAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func (a *AuthController) RegisterRoutes(app fiber.Router) {
	app.Post(a.Routes.Register, a.RegistrationCreate)
	app.Post(a.Routes.Login, a.LoginPost)
	app.Post(a.Routes.Logout, a.LogoutPost)
	app.Get(a.Routes.Profile, a.Auther.RequireAuth(), a.ProfileShow)
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(7, 100)),
		)
	}, "Invalid registration payload")
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload: %s", err)
		return RespondError(c, a.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, a.Logger, err)
	}

	token, err := a.Auther.Register(c, RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		return RespondError(c, a.Logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered",
		"token":   token,
	})
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Username
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return RespondError(c, a.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, a.Logger, err)
	}

	token, err := a.Auther.Login(c, payload)
	if err != nil {
		return RespondError(c, a.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
	})
}

func (a *AuthController) LogoutPost(c *fiber.Ctx) error {
	a.Auther.Logout(c)
	return c.JSON(fiber.Map{
		"message": "logout successful",
	})
}

func (a *AuthController) ProfileShow(c *fiber.Ctx) error {
	session, err := SessionFromContext(c)
	if err != nil {
		return RespondError(c, a.Logger, err)
	}

	return c.JSON(fiber.Map{
		"message":  "profile",
		"username": session.GetUsername(),
		"email":    session.GetEmail(),
	})
}
