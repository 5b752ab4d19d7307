package contentController

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"lsf/database"
	"lsf/middleware"
	"lsf/models"
	"lsf/utils"
	contentValidator "lsf/validators/content"

	"github.com/gofiber/fiber/v2"
)

// ModuleWithCount is a module annotated with the number of files that
// reference it.
type ModuleWithCount struct {
	models.Module
	FileCount int64 `json:"fileCount"`
}

// ListModules returns every module ordered by id, each with its file count.
// The left join keeps modules with zero files in the result.
func ListModules(c *fiber.Ctx) error {
	var modules []ModuleWithCount
	err := database.Database.Db.Model(&models.Module{}).
		Select("modules.*, COUNT(files.id) AS file_count").
		Joins("LEFT JOIN files ON files.module_id = modules.id").
		Group("modules.id").
		Order("modules.id ASC").
		Find(&modules).Error
	if err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to fetch modules")
	}

	return c.JSON(modules)
}

// GetModule returns one module with its files, most recently uploaded first.
func GetModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id")
	}

	var module models.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found")
	}

	var files []models.StoredFile
	if err := database.Database.Db.Where("module_id = ?", moduleID).Order("uploaded_at DESC").Find(&files).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to fetch module files")
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
			"url":          utils.FileURL(f.Category, f.Filename),
			"uploadedAt":   f.UploadedAt,
		})
	}

	return c.JSON(fiber.Map{
		"id":          module.ID,
		"title":       module.Title,
		"description": module.Description,
		"topics":      module.Topics,
		"objectives":  module.Objectives,
		"duration":    module.Duration,
		"startDate":   module.StartDate,
		"endDate":     module.EndDate,
		"files":       fileList,
		"createdAt":   module.CreatedAt,
		"updatedAt":   module.UpdatedAt,
	})
}

// CreateModule creates a module. Topics/objectives that are absent or not
// list-shaped become empty lists.
func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*contentValidator.ModuleRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	module := models.Module{
		Title:       reqData.Title,
		Description: reqData.Description,
		Topics:      models.JSONList(toStringList(reqData.Topics)...),
		Objectives:  models.JSONList(toStringList(reqData.Objectives)...),
		Duration:    reqData.Duration,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to create module")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"moduleId": module.ID,
		"message":  "Module created successfully",
	})
}

// UpdateModule overwrites every module field. Callers must resend fields
// they want to keep.
func UpdateModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id")
	}

	reqData, ok := c.Locals("validatedModule").(*contentValidator.ModuleRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	fields := map[string]interface{}{
		"title":       reqData.Title,
		"description": reqData.Description,
		"topics":      models.JSONList(toStringList(reqData.Topics)...),
		"objectives":  models.JSONList(toStringList(reqData.Objectives)...),
		"duration":    reqData.Duration,
		"start_date":  reqData.StartDate,
		"end_date":    reqData.EndDate,
	}

	if err := database.Database.Db.Model(&models.Module{}).Where("id = ?", moduleID).Updates(fields).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to update module")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Module updated successfully",
	})
}

// DeleteModule removes a module and cascades to its files, row and payload.
// Deleting an id that no longer exists is a silent success so repeated
// deletes stay idempotent.
func DeleteModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id")
	}

	db := database.Database.Db

	var files []models.StoredFile
	if err := db.Where("module_id = ?", moduleID).Find(&files).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to delete module")
	}

	// Best-effort payload cleanup; a missing file is not an error.
	for _, f := range files {
		if err := os.Remove(f.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove file %s: %v", f.FilePath, err)
		}
	}

	if err := db.Where("module_id = ?", moduleID).Delete(&models.StoredFile{}).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to delete module files")
	}

	if err := db.Where("id = ?", moduleID).Delete(&models.Module{}).Error; err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to delete module")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Module deleted successfully",
	})
}

// toStringList decodes a raw JSON list of strings, returning nil for
// anything that is not list-shaped.
func toStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
