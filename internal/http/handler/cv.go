package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cvdoc/internal/model"
	"cvdoc/internal/scene"
	"cvdoc/internal/service"
)

// cvID returns the :id parameter, or false after writing INVALID_ID.
func cvID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return "", false
	}
	return id, true
}

// ListCVs pages through CVs, most recently updated first.
//
// @Summary List CVs
// @Tags cvs
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.CVListResult
// @Failure 400 {object} errorPayload
// @Router /cvs [get]
func ListCVs(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateCV fills a template with the submitted record and stores the CV.
//
// @Summary Create CV from template
// @Tags cvs
// @Accept json
// @Produce json
// @Param body body service.CreateCVInput true "Template and field record"
// @Success 201 {object} model.CV
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /cvs [post]
func CreateCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateCVInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		cv, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cv)
	}
}

// GetCV returns a CV and counts a view.
//
// @Summary Get CV
// @Tags cvs
// @Produce json
// @Param id path string true "CV ID"
// @Success 200 {object} model.CV
// @Failure 404 {object} errorPayload
// @Router /cvs/{id} [get]
func GetCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		cv, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cv)
	}
}

// DuplicateCV copies a CV.
//
// @Summary Duplicate CV
// @Tags cvs
// @Produce json
// @Param id path string true "CV ID"
// @Success 201 {object} model.CV
// @Router /cvs/{id}/duplicate [post]
func DuplicateCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		cv, err := svc.Duplicate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cv)
	}
}

// UpdateCVFields applies the non-empty fields of the body to the CV document.
//
// @Summary Sparse field update
// @Tags cvs
// @Accept json
// @Produce json
// @Param id path string true "CV ID"
// @Param body body model.FieldRecord true "Fields to change"
// @Success 200 {object} service.FieldUpdateResult
// @Failure 422 {object} errorPayload
// @Router /cvs/{id}/fields [patch]
func UpdateCVFields(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		var upd model.FieldRecord
		if err := c.BodyParser(&upd); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.UpdateFields(c.UserContext(), id, upd)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type updateDocumentRequest struct {
	Title        string          `json:"title"`
	TemplateData json.RawMessage `json:"template_data"`
}

// UpdateCVDocument replaces the CV document with an edited stage.
//
// @Summary Replace CV document
// @Tags cvs
// @Accept json
// @Produce json
// @Param id path string true "CV ID"
// @Success 200 {object} model.CV
// @Failure 400 {object} errorPayload
// @Router /cvs/{id}/document [put]
func UpdateCVDocument(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		var req updateDocumentRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if len(req.TemplateData) == 0 {
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_REQUIRED", "template_data is required")
		}
		doc, err := scene.ValidateJSON(req.TemplateData)
		if err != nil {
			return writeServiceError(c, err)
		}
		cv, err := svc.UpdateDocument(c.UserContext(), id, service.UpdateDocumentInput{Title: req.Title, Document: doc})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cv)
	}
}

// ExtractCVFields reads the field record back out of the CV document.
//
// @Summary Extract fields
// @Tags cvs
// @Produce json
// @Param id path string true "CV ID"
// @Success 200 {object} model.FieldRecord
// @Router /cvs/{id}/fields [get]
func ExtractCVFields(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		rec, err := svc.Extract(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// AnalyzeCV scores the CV completeness.
//
// @Summary Completeness analysis
// @Tags cvs
// @Produce json
// @Param id path string true "CV ID"
// @Success 200 {object} fields.Analysis
// @Router /cvs/{id}/analysis [get]
func AnalyzeCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		a, err := svc.Analyze(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

type translateRequest struct {
	Language string `json:"language"`
}

// TranslateCV stores a translated copy of the CV.
//
// @Summary Translate CV
// @Tags cvs
// @Accept json
// @Produce json
// @Param id path string true "CV ID"
// @Success 201 {object} service.TranslateResult
// @Failure 502 {object} errorPayload
// @Router /cvs/{id}/translate [post]
func TranslateCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		var req translateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Translate(c.UserContext(), id, req.Language)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// DeleteCV removes a CV and its published files.
//
// @Summary Delete CV
// @Tags cvs
// @Param id path string true "CV ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /cvs/{id} [delete]
func DeleteCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
