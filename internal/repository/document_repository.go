package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/document-service/internal/domain"
)

// DocumentRepository defines persistence access for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository returns a Postgres-backed implementation.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (document_name, file_name, file_url, description, uploaded_by_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		doc.DocumentName,
		doc.FileName,
		doc.FileURL,
		doc.Description,
		doc.UploadedByID,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
}

func (r *documentRepository) Update(ctx context.Context, doc *domain.Document) error {
	const query = `
        UPDATE documents SET document_name=$1, description=$2, updated_by_id=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		doc.DocumentName,
		doc.Description,
		doc.UpdatedByID,
		doc.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	const query = `
        SELECT id, document_name, file_name, file_url, description, uploaded_by_id, updated_by_id, created_at, updated_at
        FROM documents WHERE id=$1`

	var doc domain.Document
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.DocumentName,
		&doc.FileName,
		&doc.FileURL,
		&doc.Description,
		&doc.UploadedByID,
		&doc.UpdatedByID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context) ([]domain.Document, error) {
	const query = `
        SELECT id, document_name, file_name, file_url, description, uploaded_by_id, updated_by_id, created_at, updated_at
        FROM documents ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.DocumentName,
			&doc.FileName,
			&doc.FileURL,
			&doc.Description,
			&doc.UploadedByID,
			&doc.UpdatedByID,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
