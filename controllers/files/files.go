package filesController

import (
	"log"
	"mime/multipart"
	"os"
	"strconv"

	"lsf/database"
	"lsf/middleware"
	"lsf/models"
	"lsf/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadModuleFile attaches a file to an existing module.
func UploadModuleFile(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id")
	}

	var module models.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found")
	}

	id := uint(moduleID)
	return uploadToCategory(c, models.CategoryModule, &id)
}

// UploadResourceFile stores a file in the resources category.
func UploadResourceFile(c *fiber.Ctx) error {
	return uploadToCategory(c, models.CategoryResources, nil)
}

// UploadTestimonialFile stores a file in the testimonials category.
func UploadTestimonialFile(c *fiber.Ctx) error {
	return uploadToCategory(c, models.CategoryTestimonials, nil)
}

// UploadBackground stores a background image under the images root. No
// files row is created; the caller wires the returned URL into page content.
func UploadBackground(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No image selected")
	}

	mimeType := utils.DetectMimeType(file)
	if !utils.IsAllowedMimeType(mimeType) {
		return middleware.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "File type not allowed: "+mimeType)
	}
	if file.Size > utils.MaxUploadSize {
		return middleware.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 100MB limit")
	}

	storedName, _, err := utils.SaveUploadedFile(file, models.CategoryBackground)
	if err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to upload image")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"image": fiber.Map{
			"filename": storedName,
			"url":      utils.FileURL(models.CategoryBackground, storedName),
		},
	})
}

// uploadToCategory validates, persists and records a file upload.
func uploadToCategory(c *fiber.Ctx, category string, moduleID *uint) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No file selected")
	}

	mimeType := utils.DetectMimeType(file)
	if !utils.IsAllowedMimeType(mimeType) {
		return middleware.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "File type not allowed: "+mimeType)
	}
	if file.Size > utils.MaxUploadSize {
		return middleware.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 100MB limit")
	}

	storedName, filePath, err := utils.SaveUploadedFile(file, category)
	if err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to upload file")
	}

	record := models.StoredFile{
		Filename:     storedName,
		OriginalName: originalName(file),
		FilePath:     filePath,
		FileType:     mimeType,
		FileSize:     file.Size,
		Category:     category,
		ModuleID:     moduleID,
		Description:  c.FormValue("description"),
	}

	if err := database.Database.Db.Create(&record).Error; err != nil {
		// The row is the catalog of record; drop the stray payload.
		if rmErr := os.Remove(filePath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("Failed to remove file %s: %v", filePath, rmErr)
		}
		return middleware.InternalErrorResponse(c, err, "Failed to upload file")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"file": fiber.Map{
			"id":           record.ID,
			"filename":     record.Filename,
			"originalName": record.OriginalName,
			"fileType":     record.FileType,
			"fileSize":     record.FileSize,
			"description":  record.Description,
			"moduleId":     record.ModuleID,
			"url":          utils.FileURL(category, record.Filename),
			"uploadedAt":   record.UploadedAt,
		},
	})
}

func originalName(file *multipart.FileHeader) string {
	if file.Filename == "" {
		return "unnamed"
	}
	return file.Filename
}

// ListByCategory returns a category's files, most recently uploaded first.
// For the module category an optional moduleId query narrows the result.
func ListByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	moduleID := c.Query("moduleId")

	query := database.Database.Db.Where("category = ?", category)
	if moduleID != "" && category == models.CategoryModule {
		query = query.Where("module_id = ?", moduleID)
	}

	var files []models.StoredFile
	if err := query.Order("uploaded_at DESC").Find(&files).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to fetch files")
	}

	fileList := make([]fiber.Map, 0, len(files))
	for _, f := range files {
		fileList = append(fileList, fiber.Map{
			"id":           f.ID,
			"filename":     f.Filename,
			"originalName": f.OriginalName,
			"fileType":     f.FileType,
			"fileSize":     f.FileSize,
			"description":  f.Description,
			"moduleId":     f.ModuleID,
			"url":          utils.FileURL(f.Category, f.Filename),
			"uploadedAt":   f.UploadedAt,
		})
	}

	return c.JSON(fileList)
}

// DeleteFile unlinks a file's payload and removes its row. The unlink is
// best-effort: an already-missing payload still lets the row go.
func DeleteFile(c *fiber.Ctx) error {
	fileID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid file id")
	}

	var file models.StoredFile
	if err := database.Database.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "File not found")
	}

	if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove file %s: %v", file.FilePath, err)
	}

	if err := database.Database.Db.Delete(&file).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to delete file")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "File deleted successfully",
	})
}
