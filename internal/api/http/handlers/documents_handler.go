package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/document-service/internal/api/dto"
	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/service"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// DocumentsHandler exposes document CRUD endpoints.
type DocumentsHandler struct {
	docs *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(docService *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{docs: docService}
}

// Create handles POST /documents (multipart: file + metadata fields).
func (h *DocumentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file is required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unable to read uploaded file", nil)
	}
	defer file.Close()

	doc, err := h.docs.Create(c.UserContext(), principal.Credential.UserID, service.DocumentCreateInput{
		DocumentName: c.FormValue("documentName"),
		Description:  c.FormValue("description"),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get(fiber.HeaderContentType),
		Size:         fileHeader.Size,
		Reader:       file,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Document created successfully",
		"data":    dto.NewDocumentResponse(doc),
	})
}

// List handles GET /documents.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	docs, err := h.docs.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, dto.NewDocumentResponse(&docs[i]))
	}
	return c.JSON(fiber.Map{
		"message": "Documents retrieved successfully.",
		"data":    items,
	})
}

// Get handles GET /documents/:id.
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	doc, err := h.docs.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDocumentResponse(doc)})
}

// Update handles PUT /documents/:id.
func (h *DocumentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	doc, err := h.docs.Update(c.UserContext(), principal.Credential.UserID, id, service.DocumentUpdateInput{
		DocumentName: req.DocumentName,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Document updated successfully",
		"data":    dto.NewDocumentResponse(doc),
	})
}

// Delete handles DELETE /documents/:id.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.docs.Delete(c.UserContext(), principal.Credential.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Document deleted successfully"})
}
