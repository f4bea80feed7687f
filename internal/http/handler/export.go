package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cvdoc/internal/service"
	"cvdoc/internal/storage"
)

// exportParams reads ?format= (default pdf) and ?dpi= (0 = renderer default).
func exportParams(c *fiber.Ctx) (format string, dpi float64, ok bool) {
	format = strings.ToLower(c.Query("format", service.FormatPDF))
	if raw := c.Query("dpi"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 1200 {
			_ = writeError(c, fiber.StatusBadRequest, "INVALID_DPI", "dpi must be a number between 1 and 1200")
			return "", 0, false
		}
		dpi = v
	}
	return format, dpi, true
}

// ExportCV streams the rendered CV as an attachment.
//
// @Summary Download CV
// @Tags exports
// @Produce application/pdf
// @Produce image/png
// @Param id path string true "CV ID"
// @Param format query string false "pdf or png" default(pdf)
// @Param dpi query number false "Bitmap resolution for png"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /cvs/{id}/export [get]
func ExportCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		format, dpi, ok := exportParams(c)
		if !ok {
			return nil
		}
		res, err := svc.Export(c.UserContext(), id, format, dpi)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, storage.AttachmentDisposition(res.Filename))
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// PublishCV renders the CV into object storage and returns a download link.
//
// @Summary Publish CV
// @Tags exports
// @Produce json
// @Param id path string true "CV ID"
// @Param format query string false "pdf or png" default(pdf)
// @Param dpi query number false "Bitmap resolution for png"
// @Success 201 {object} service.PublishResult
// @Router /cvs/{id}/publish [post]
func PublishCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		format, dpi, ok := exportParams(c)
		if !ok {
			return nil
		}
		res, err := svc.Publish(c.UserContext(), id, format, dpi)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListCVExports lists the published files of a CV.
//
// @Summary List published files
// @Tags exports
// @Produce json
// @Param id path string true "CV ID"
// @Success 200 {array} model.Export
// @Router /cvs/{id}/exports [get]
func ListCVExports(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		items, err := svc.ListExports(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// DownloadCVExport streams a previously published file.
//
// @Summary Download published file
// @Tags exports
// @Produce application/pdf,image/png
// @Param id path string true "CV ID"
// @Param exportId path string true "Export ID"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /cvs/{id}/exports/{exportId} [get]
func DownloadCVExport(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cvID(c)
		if !ok {
			return nil
		}
		dl, err := svc.OpenExport(c.UserContext(), id, c.Params("exportId"))
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, dl.Export.ContentType)
		c.Set(fiber.HeaderContentDisposition, storage.AttachmentDisposition(dl.Export.Filename))
		// fasthttp closes the body once it has been written.
		return c.SendStream(dl.Body, int(dl.Export.Size))
	}
}
