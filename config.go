package inmo

import (
	"os"
	"strconv"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig is the process configuration, read once at startup and
// passed explicitly into the services that need it.
type AppConfig struct {
	Port         string
	SecretKey    string
	BcryptCost   int
	TokenTTL     time.Duration
	MongoURI     string
	DatabaseName string
	CookieName   string
	Issuer       string
	Env          string
}

var _ Config = (*AppConfig)(nil)

// LoadConfig builds an AppConfig from the environment. SECRET_KEY is
// the only required variable; everything else has a sane default.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:         envOr("PORT", "3000"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		BcryptCost:   bcrypt.DefaultCost,
		TokenTTL:     time.Hour,
		MongoURI:     envOr("MONGODB_URLSTRING", "mongodb://localhost:27017"),
		DatabaseName: envOr("DATABASE_NAME", "inmobiliaria"),
		CookieName:   envOr("COOKIE_NAME", "access_token"),
		Issuer:       envOr("TOKEN_ISSUER", "inmobiliaria-api"),
		Env:          envOr("GO_ENV", "development"),
	}

	if v := os.Getenv("SALT_ROUNDS"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "SALT_ROUNDS must be an integer")
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("TOKEN_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "TOKEN_TTL_SECONDS must be an integer")
		}
		cfg.TokenTTL = time.Duration(secs) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields a running service cannot do without.
func (c *AppConfig) Validate() error {
	if c.SecretKey == "" {
		return goerrors.New("SECRET_KEY is required", goerrors.CategoryValidation)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return goerrors.New("SALT_ROUNDS outside the supported bcrypt cost range", goerrors.CategoryValidation).
			WithMetadata(map[string]any{
				"cost": c.BcryptCost,
				"min":  bcrypt.MinCost,
				"max":  bcrypt.MaxCost,
			})
	}

	if c.TokenTTL <= 0 {
		return goerrors.New("token TTL must be positive", goerrors.CategoryValidation)
	}

	return nil
}

func (c *AppConfig) GetSigningKey() string      { return c.SecretKey }
func (c *AppConfig) GetBcryptCost() int         { return c.BcryptCost }
func (c *AppConfig) GetTokenTTL() time.Duration { return c.TokenTTL }
func (c *AppConfig) GetCookieName() string      { return c.CookieName }
func (c *AppConfig) GetIssuer() string          { return c.Issuer }
func (c *AppConfig) IsProduction() bool         { return c.Env == "production" }

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
