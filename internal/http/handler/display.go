package handler

import (
	"github.com/gofiber/fiber/v2"

	"kundenstopper/internal/service"
)

// CurrentDocument godoc
// @Summary Document the public display should show
// @Tags display
// @Success 200 {object} model.Display
// @Failure 404 {object} errorPayload
// @Router /api/current-pdf [get]
func CurrentDocument(displaySvc service.DisplayService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cur, err := displaySvc.Current(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(cur)
	}
}

// ServeUpload streams a stored PDF. A file removed after the display resolved
// it simply answers 404.
func ServeUpload(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := docSvc.Open(c.UserContext(), c.Params("name"))
		if err != nil {
			return serviceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, "inline")
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}

// SelectDocument godoc
// @Summary Pin the display to a document
// @Tags display
// @Param id path int true "Document ID"
// @Success 200 {object} model.Document
// @Router /admin/documents/{id}/select [post]
func SelectDocument(displaySvc service.DisplayService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := displaySvc.Select(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// SelectNewest godoc
// @Summary Let the display follow the newest upload
// @Tags display
// @Success 204
// @Router /admin/select-newest [post]
func SelectNewest(displaySvc service.DisplayService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := displaySvc.SelectNewest(c.UserContext()); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
