package contentController

import (
	"encoding/json"

	"lsf/database"
	"lsf/middleware"
	"lsf/models"
	contentValidator "lsf/validators/content"

	"github.com/gofiber/fiber/v2"
)

// GetPage returns the content record for a section. The stored data payload
// is parsed lazily; malformed stored data is returned raw rather than
// failing the request.
func GetPage(c *fiber.Ctx) error {
	section := c.Params("section")

	var content models.PageContent
	if err := database.Database.Db.Where("section = ?", section).First(&content).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Content not found")
	}

	var parsedData interface{}
	if content.Data != "" {
		if err := json.Unmarshal([]byte(content.Data), &parsedData); err != nil {
			parsedData = content.Data
		}
	}

	return c.JSON(fiber.Map{
		"id":              content.ID,
		"section":         content.Section,
		"title":           content.Title,
		"description":     content.Description,
		"backgroundImage": content.BackgroundImage,
		"data":            parsedData,
		"updatedAt":       content.UpdatedAt,
	})
}

// UpsertPage updates a section's content, inserting the row when the
// section does not exist yet.
func UpsertPage(c *fiber.Ctx) error {
	section := c.Params("section")

	reqData, ok := c.Locals("validatedPage").(*contentValidator.PageUpdateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	dataString := serializeData(reqData.Data)

	fields := map[string]interface{}{
		"title":            reqData.Title,
		"description":      reqData.Description,
		"background_image": reqData.BackgroundImage,
		"data":             dataString,
	}

	db := database.Database.Db
	result := db.Model(&models.PageContent{}).Where("section = ?", section).Updates(fields)
	if result.Error != nil {
		return middleware.InternalErrorResponse(c, result.Error, "Failed to update content")
	}

	if result.RowsAffected == 0 {
		content := models.PageContent{
			Section:         section,
			Title:           reqData.Title,
			Description:     reqData.Description,
			BackgroundImage: reqData.BackgroundImage,
			Data:            dataString,
		}
		if err := db.Create(&content).Error; err != nil {
			// A concurrent upsert may have inserted the section first; the
			// unique index rejects the duplicate, so retry as an update.
			retry := db.Model(&models.PageContent{}).Where("section = ?", section).Updates(fields)
			if retry.Error != nil || retry.RowsAffected == 0 {
				return middleware.InternalErrorResponse(c, err, "Failed to update content")
			}
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Content updated successfully",
	})
}

// serializeData stores structured payloads as their JSON text and plain
// string payloads as-is.
func serializeData(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
