package contentRoutes

import (
	contentControllers "lsf/controllers/content"
	"lsf/middleware"
	contentValidators "lsf/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes wires page content and module catalog routes. Reads
// stay open to anonymous callers; every write goes through the JWT gate.
func SetupContentRoutes(app *fiber.App) {
	contentGroup := app.Group("/api/content")

	// Page content
	contentGroup.Get("/page/:section", contentControllers.GetPage)
	contentGroup.Put("/page/:section", middleware.JWTMiddleware, contentValidators.UpsertPage(), contentControllers.UpsertPage)

	// Module catalog
	contentGroup.Get("/modules", contentControllers.ListModules)
	contentGroup.Get("/modules/:id", contentControllers.GetModule)
	contentGroup.Post("/modules", middleware.JWTMiddleware, contentValidators.SaveModule(), contentControllers.CreateModule)
	contentGroup.Put("/modules/:id", middleware.JWTMiddleware, contentValidators.SaveModule(), contentControllers.UpdateModule)
	contentGroup.Delete("/modules/:id", middleware.JWTMiddleware, contentControllers.DeleteModule)
}
