package authRoutes

import (
	authControllers "lsf/controllers/auth"
	"lsf/middleware"
	authValidators "lsf/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/verify", middleware.JWTMiddleware, authControllers.Verify)
	authGroup.Post("/logout", authControllers.Logout)
}
