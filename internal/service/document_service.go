package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/document-service/internal/domain"
	"github.com/spec-kit/document-service/internal/events"
	"github.com/spec-kit/document-service/internal/repository"
	"github.com/spec-kit/document-service/internal/storage"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// DocumentCreateInput carries document metadata plus the upload stream.
type DocumentCreateInput struct {
	DocumentName string
	Description  string
	FileName     string
	ContentType  string
	Size         int64
	Reader       io.Reader
}

// DocumentUpdateInput carries the mutable metadata fields.
type DocumentUpdateInput struct {
	DocumentName *string
	Description  *string
}

// DocumentService manages document metadata and the backing binaries.
type DocumentService struct {
	docs       repository.DocumentRepository
	store      storage.ObjectStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDocumentService builds the service.
func NewDocumentService(docs repository.DocumentRepository, store storage.ObjectStore, dispatcher events.Dispatcher, logger *zap.Logger) *DocumentService {
	return &DocumentService{docs: docs, store: store, dispatcher: dispatcher, logger: logger}
}

// Create uploads the binary to object storage and persists the metadata row.
func (s *DocumentService) Create(ctx context.Context, actorID int64, input DocumentCreateInput) (*domain.Document, error) {
	if input.FileName == "" || input.Reader == nil {
		return nil, apperrors.NewValidationError("file is required", nil)
	}
	if input.DocumentName == "" {
		input.DocumentName = input.FileName
	}

	fileURL, err := s.store.Upload(ctx, input.FileName, input.Reader, input.Size, input.ContentType)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("object storage", err)
	}

	doc := &domain.Document{
		DocumentName: input.DocumentName,
		FileName:     input.FileName,
		FileURL:      fileURL,
		Description:  input.Description,
		UploadedByID: actorID,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventDocumentUploaded, doc.ID, actorID, events.DocumentUploadedPayload{
		DocumentName: doc.DocumentName,
		FileName:     doc.FileName,
		FileURL:      doc.FileURL,
	})
	return doc, nil
}

// List returns all document metadata rows.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docs.List(ctx)
}

// GetByID fetches a single document.
func (s *DocumentService) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("document", map[string]any{"id": id})
		}
		return nil, err
	}
	return doc, nil
}

// Update applies metadata changes and records the updating user.
func (s *DocumentService) Update(ctx context.Context, actorID, id int64, input DocumentUpdateInput) (*domain.Document, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DocumentName != nil {
		doc.DocumentName = *input.DocumentName
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	doc.UpdatedByID = &actorID

	if err := s.docs.Update(ctx, doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("document", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.EventDocumentUpdated, doc.ID, actorID, events.DocumentUpdatedPayload{
		DocumentName: doc.DocumentName,
	})
	return doc, nil
}

// Delete removes the metadata row, then best-effort removes the binary.
func (s *DocumentService) Delete(ctx context.Context, actorID, id int64) error {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("document", map[string]any{"id": id})
		}
		return err
	}

	if key := objectKeyFromURL(doc.FileURL); key != "" {
		if err := s.store.Remove(ctx, key); err != nil {
			s.logger.Warn("failed to remove stored object", zap.String("key", key), zap.Error(err))
		}
	}

	s.publish(ctx, events.EventDocumentDeleted, id, actorID, nil)
	return nil
}

func (s *DocumentService) publish(ctx context.Context, eventType events.EventType, docID, actorID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		DocumentID: docID,
		ActorID:    actorID,
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}

// objectKeyFromURL recovers the storage key from a stored URL of the form
// scheme://endpoint/bucket/key.
func objectKeyFromURL(fileURL string) string {
	parts := strings.SplitN(fileURL, "/", 5)
	if len(parts) < 5 {
		return ""
	}
	return parts[4]
}
