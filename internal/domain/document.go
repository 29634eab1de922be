package domain

import "time"

// Document holds metadata for an uploaded file; the binary lives in object storage.
type Document struct {
	ID           int64
	DocumentName string
	FileName     string
	FileURL      string
	Description  string
	UploadedByID int64
	UpdatedByID  *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
