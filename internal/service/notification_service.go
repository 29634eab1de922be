package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/document-service/internal/config"
	"github.com/spec-kit/document-service/internal/events"
)

// NotificationService emits notifications for document domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDocumentUploaded, n.handleDocumentUploaded)
	n.dispatcher.Subscribe(events.EventDocumentUpdated, n.handleDocumentUpdated)
	n.dispatcher.Subscribe(events.EventDocumentDeleted, n.handleDocumentDeleted)
	n.dispatcher.Subscribe(events.EventIngestionTriggered, n.handleIngestionTriggered)
}

func (n *NotificationService) handleDocumentUploaded(ctx context.Context, event events.Event) error {
	n.logger.Info("DocumentUploaded", zap.Int64("document_id", event.DocumentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDocumentUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("DocumentUpdated", zap.Int64("document_id", event.DocumentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDocumentDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("DocumentDeleted", zap.Int64("document_id", event.DocumentID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIngestionTriggered(ctx context.Context, event events.Event) error {
	n.logger.Info("IngestionTriggered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("document_id", event.DocumentID),
		zap.String("event_type", string(event.Type)))
}
