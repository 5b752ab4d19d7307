package contentValidator

import (
	"encoding/json"

	"lsf/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PageUpdateRequest carries a page content upsert. Data is kept raw; the
// controller decides how to serialize it.
type PageUpdateRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	BackgroundImage string          `json:"backgroundImage"`
	Data            json.RawMessage `json:"data"`
}

// ModuleRequest carries a module create or full update. Topics and
// Objectives stay raw so non-list payloads can be coerced to empty lists
// instead of rejected.
type ModuleRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Topics      json.RawMessage `json:"topics"`
	Objectives  json.RawMessage `json:"objectives"`
	Duration    string          `json:"duration"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
}

// UpsertPage parses the page payload. No field is mandatory; the original
// content record accepts partial copy.
func UpsertPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PageUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		c.Locals("validatedPage", reqData)
		return c.Next()
	}
}

// SaveModule validates a module create/update payload.
func SaveModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				if fieldErr.Field() == "Title" {
					errors["title"] = "Title is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}
