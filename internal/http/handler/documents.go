package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"kundenstopper/internal/service"
)

// ListDocuments godoc
// @Summary List documents, newest first
// @Tags documents
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} service.DocumentListResult
// @Router /admin/documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		perPage, err := strconv.Atoi(c.Query("per_page", strconv.Itoa(service.DefaultPerPage)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PER_PAGE", "invalid per_page")
		}

		res, err := docSvc.List(c.UserContext(), page, perPage)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument godoc
// @Summary Upload a PDF (multipart/form-data, field name: file)
// @Tags documents
// @Accept mpfd
// @Param file formData file true "PDF file"
// @Param select formData bool false "Pin the display to the upload"
// @Success 201 {object} model.Document
// @Router /admin/documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		pin, _ := strconv.ParseBool(c.FormValue("select"))

		doc, err := docSvc.Upload(c.UserContext(), service.UploadInput{
			Reader:   f,
			Filename: fh.Filename,
			Size:     fh.Size,
			Select:   pin,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Param id path int true "Document ID"
// @Success 200 {object} model.Document
// @Router /admin/documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// RenameDocument godoc
// @Summary Rename a document; ".pdf" is appended when missing
// @Tags documents
// @Accept json
// @Param id path int true "Document ID"
// @Param body body renameRequest true "New name"
// @Success 200 {object} model.Document
// @Router /admin/documents/{id}/rename [post]
func RenameDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req renameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := docSvc.Rename(c.UserContext(), id, req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary Delete a document and its file
// @Tags documents
// @Param id path int true "Document ID"
// @Success 204
// @Router /admin/documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
