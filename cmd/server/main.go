package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/django/v3"
	"go.uber.org/zap"

	inmo "github.com/Joseargentina/go-inmo"
)

func main() {
	cfg, err := inmo.LoadConfig()
	if err != nil {
		fallback := zap.Must(zap.NewDevelopment()).Sugar()
		fallback.Fatalf("configuration error: %s", err)
	}

	logger := newLogger(cfg)
	defer logger.sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error: %s", err)
		os.Exit(1)
	}
}

func run(cfg *inmo.AppConfig, logger *zapLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := inmo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Warn("mongo disconnect: %s", err)
		}
	}()

	repo := inmo.NewRepositoryManager(client.Database(cfg.DatabaseName))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	hasher, err := inmo.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	tokens := inmo.NewTokenService([]byte(cfg.SecretKey), cfg.TokenTTL, cfg.Issuer, logger)

	auther := inmo.NewAuthenticator(repo.Users(), hasher, tokens).
		WithLogger(logger).
		WithActivitySink(inmo.NewLoggerActivitySink(logger))

	routeAuth, err := inmo.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		return err
	}
	routeAuth.Logger = logger

	engine := django.New("./views", ".django")

	app := fiber.New(fiber.Config{
		AppName: "go-inmo",
		Views:   engine,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(routeAuth.WithSession())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("home", fiber.Map{
			"title": "Inmobiliaria API",
		})
	})

	inmo.NewAuthController(
		inmo.WithAuthRouteAuthenticator(routeAuth),
		inmo.WithAuthLogger(logger),
	).RegisterRoutes(app)

	inmo.NewProductController(
		inmo.WithProductsRepository(repo.Products()),
		inmo.WithProductLogger(logger),
	).RegisterRoutes(app)

	app.Use(inmo.NotFoundHandler())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on :%s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("received %s, shutting down", sig)
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()

	return app.ShutdownWithContext(shutdownCtx)
}

// zapLogger adapts zap's sugared logger to the format based Logger the
// rest of the code expects.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newLogger(cfg *inmo.AppConfig) *zapLogger {
	var core *zap.Logger
	if cfg.IsProduction() {
		core = zap.Must(zap.NewProduction())
	} else {
		core = zap.Must(zap.NewDevelopment())
	}
	return &zapLogger{sugar: core.Sugar()}
}

func (l *zapLogger) Debug(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Info(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warn(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Error(format string, args ...any) { l.sugar.Errorf(format, args...) }

func (l *zapLogger) sync() {
	_ = l.sugar.Sync()
}
