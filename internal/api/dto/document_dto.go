package dto

import (
	"time"

	"github.com/spec-kit/document-service/internal/domain"
)

// DocumentResponse is the serializable document view.
type DocumentResponse struct {
	ID           int64     `json:"id"`
	DocumentName string    `json:"documentName"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileUrl"`
	Description  string    `json:"description,omitempty"`
	UploadedByID int64     `json:"uploadedById"`
	UpdatedByID  *int64    `json:"updatedById,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewDocumentResponse maps a domain document to its response view.
func NewDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		DocumentName: d.DocumentName,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		Description:  d.Description,
		UploadedByID: d.UploadedByID,
		UpdatedByID:  d.UpdatedByID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UpdateDocumentRequest payload; omitted fields stay unchanged.
type UpdateDocumentRequest struct {
	DocumentName *string `json:"documentName"`
	Description  *string `json:"description"`
}

// TriggerIngestionRequest payload for POST /ingestion/trigger.
type TriggerIngestionRequest struct {
	DocumentID string `json:"documentId"`
}
