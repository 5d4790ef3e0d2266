package routes

import (
	auth_handlers "doktor.link/handlers/auth"
	"doktor.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, svc appServices, loginLimiter *middlewares.RateLimiter) {
	authHandler := auth_handlers.NewAuthHandler(svc.credentials)

	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", middlewares.RateLimit(loginLimiter), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	userRoutes := app.Group("/profile")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Post("/password", authHandler.UpdatePassword)
}
