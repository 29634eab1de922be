package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/document-service/internal/api/dto"
	"github.com/spec-kit/document-service/internal/service"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// IngestionHandler proxies ingestion endpoints to the external backend.
type IngestionHandler struct {
	ingestion *service.IngestionService
}

// NewIngestionHandler constructs handler.
func NewIngestionHandler(ingestionService *service.IngestionService) *IngestionHandler {
	return &IngestionHandler{ingestion: ingestionService}
}

// Trigger handles POST /ingestion/trigger.
func (h *IngestionHandler) Trigger(c *fiber.Ctx) error {
	var req dto.TriggerIngestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DocumentID == "" {
		return apperrors.NewValidationError("documentId required", nil)
	}

	result, err := h.ingestion.Trigger(c.UserContext(), req.DocumentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ingestion triggered successfully",
		"data":    rawJSON(result),
	})
}

// Status handles GET /ingestion/status/:id.
func (h *IngestionHandler) Status(c *fiber.Ctx) error {
	id := c.Params("id")
	result, err := h.ingestion.Status(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ingestion status retrieved successfully",
		"data":    rawJSON(result),
	})
}

// History handles GET /ingestion/history.
func (h *IngestionHandler) History(c *fiber.Ctx) error {
	result, err := h.ingestion.History(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Ingestion history retrieved successfully",
		"data":    rawJSON(result),
	})
}

func rawJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
