package handler

import (
	"github.com/gofiber/fiber/v2"

	"cvdoc/internal/service"
)

// ListTemplates returns the template catalogue without documents.
//
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {array} model.Template
// @Router /templates [get]
func ListTemplates(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListTemplates(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// GetTemplate returns one template including its master document.
//
// @Summary Get template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} model.Template
// @Failure 404 {object} errorPayload
// @Router /templates/{id} [get]
func GetTemplate(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tpl, err := svc.GetTemplate(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tpl)
	}
}
