package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/document-service/internal/events"
	"github.com/spec-kit/document-service/internal/ingestion"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// IngestionService proxies ingestion operations to the external backend.
// The backend's responses are opaque to this service.
type IngestionService struct {
	client     *ingestion.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewIngestionService builds the service.
func NewIngestionService(client *ingestion.Client, dispatcher events.Dispatcher, logger *zap.Logger) *IngestionService {
	return &IngestionService{client: client, dispatcher: dispatcher, logger: logger}
}

// Trigger starts ingestion for the given document.
func (s *IngestionService) Trigger(ctx context.Context, documentID string) (json.RawMessage, error) {
	result, err := s.client.Trigger(ctx, documentID)
	if err != nil {
		s.logger.Warn("ingestion trigger failed", zap.String("document_id", documentID), zap.Error(err))
		return nil, apperrors.NewDependencyUnavailable("ingestion backend", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventIngestionTriggered,
			Timestamp: time.Now(),
			Payload:   events.IngestionTriggeredPayload{DocumentID: documentID},
		})
	}
	return result, nil
}

// Status fetches the ingestion status for an ingestion id.
func (s *IngestionService) Status(ctx context.Context, id string) (json.RawMessage, error) {
	result, err := s.client.Status(ctx, id)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("ingestion backend", err)
	}
	return result, nil
}

// History fetches the ingestion history.
func (s *IngestionService) History(ctx context.Context) (json.RawMessage, error) {
	result, err := s.client.History(ctx)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("ingestion backend", err)
	}
	return result, nil
}
