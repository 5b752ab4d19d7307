package fileRoutes

import (
	filesControllers "lsf/controllers/files"
	"lsf/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupFileRoutes wires the upload, listing and delete routes.
func SetupFileRoutes(app *fiber.App) {
	fileGroup := app.Group("/api/files")

	fileGroup.Post("/upload/module/:moduleId", middleware.JWTMiddleware, filesControllers.UploadModuleFile)
	fileGroup.Post("/upload/resources", middleware.JWTMiddleware, filesControllers.UploadResourceFile)
	fileGroup.Post("/upload/testimonials", middleware.JWTMiddleware, filesControllers.UploadTestimonialFile)
	fileGroup.Post("/upload/background", middleware.JWTMiddleware, filesControllers.UploadBackground)

	fileGroup.Get("/category/:category", filesControllers.ListByCategory)
	fileGroup.Delete("/:id", middleware.JWTMiddleware, filesControllers.DeleteFile)
}
