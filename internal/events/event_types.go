package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDocumentUploaded   EventType = "document_uploaded"
	EventDocumentUpdated    EventType = "document_updated"
	EventDocumentDeleted    EventType = "document_deleted"
	EventIngestionTriggered EventType = "ingestion_triggered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	DocumentID int64       `json:"document_id"`
	ActorID    int64       `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// DocumentUploadedPayload payload.
type DocumentUploadedPayload struct {
	DocumentName string `json:"document_name"`
	FileName     string `json:"file_name"`
	FileURL      string `json:"file_url"`
}

// DocumentUpdatedPayload payload.
type DocumentUpdatedPayload struct {
	DocumentName string `json:"document_name"`
}

// IngestionTriggeredPayload payload.
type IngestionTriggeredPayload struct {
	DocumentID string `json:"document_id"`
}
