package routes

import (
	"context"
	"errors"
	"time"

	"doktor.link/configs/configsdatabase"
	"doktor.link/configs/configslog"
	"doktor.link/configs/configssession"
	"doktor.link/middlewares"
	"doktor.link/pkg/renderer"
	"doktor.link/services"
	"doktor.link/utils"
	"doktor.link/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies everything the HTTP layer needs from main.
type Dependencies struct {
	DB         *gorm.DB
	Sessions   *session.Store
	SecretKey  string
	BcryptCost int
	LoginRate  float64
	LoginBurst int
	// DisableRequestLog turns off the access log middleware (tests).
	DisableRequestLog bool
}

// services built once per app and shared by the route groups
type appServices struct {
	credentials services.ICredentialService
	schedule    services.IScheduleService
	booking     services.IBookingService
}

// NewApp creates the Fiber app with the template engine and all routes.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(),
		ErrorHandler: errorHandler,
		AppName:      "doktor.link",
	})
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes registers the global middlewares and every route group.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Global middlewares ---
	app.Use(recoverMiddleware.New())
	if !deps.DisableRequestLog {
		app.Use(logger.New())
	}
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: configssession.DeriveCookieKey(deps.SecretKey),
	}))
	app.Use(initializeSessionAndLocals(deps.Sessions))

	svc := appServices{
		credentials: services.NewCredentialService(deps.DB, deps.BcryptCost),
		schedule:    services.NewScheduleService(deps.DB),
		booking:     services.NewBookingService(deps.DB),
	}

	loginLimiter := middlewares.NewRateLimiter(deps.LoginRate, deps.LoginBurst)
	app.Hooks().OnShutdown(func() error {
		loginLimiter.Close()
		return nil
	})

	// --- Route groups ---
	registerAuthRoutes(app, svc, loginLimiter)
	registerDashboardRoutes(app, svc)
	registerAPIRoutes(app, svc)

	app.Get("/healthz", healthHandler(deps.DB))
	app.Get("/", rootRedirector)

	// --- 404 ---
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals exposes the session store and the logged-in principal to handlers.
func initializeSessionAndLocals(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		utils.SetSessionStore(c, store)
		sess, err := utils.SessionStart(c)
		if err != nil {
			configslog.Log.Warn("Session could not be loaded", zap.Error(err))
			return c.Next()
		}
		if p, err := utils.PrincipalFromSession(sess); err == nil {
			utils.SetPrincipal(c, p)
		}
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	return c.Redirect("/login")
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := configsdatabase.Ping(ctx, db); err != nil {
			configslog.Log.Error("Health check: database ping failed", zap.Error(err))
			return renderer.Text(c, fiber.StatusServiceUnavailable, "database unavailable")
		}
		return renderer.Text(c, fiber.StatusOK, "ok")
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	switch c.Accepts("application/json", "text/html") {
	case "application/json":
		return renderer.JSONError(c, fiber.StatusNotFound, "Not found.")
	default:
		return renderer.Text(c, fiber.StatusNotFound, "Not found.")
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return renderer.Text(c, fe.Code, fe.Message)
	}
	configslog.Log.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	return renderer.Text(c, fiber.StatusInternalServerError, "Internal server error.")
}
