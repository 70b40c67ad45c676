package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/keyturn-crm/keyturn/internal/common"
	"github.com/keyturn-crm/keyturn/internal/model"
)

// SaveDocument stores a file blob with its metadata and returns the
// assigned id. An id already set on the document is respected, which lets
// callers re-import exports; otherwise a fresh UUID is generated.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.Document) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateDocument(doc); err != nil {
		return "", err
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.MimeType == "" {
		doc.MimeType = "application/octet-stream"
	}
	doc.Size = int64(len(doc.Data))

	attrs, err := marshalAttrs(doc.Attrs)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, mime_type, contact_id, property_id, transaction_id, size, attrs, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.MimeType, doc.ContactID, doc.PropertyID, doc.TransactionID, doc.Size, attrs, doc.Data)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return doc.ID, nil
}

// GetDocument fetches a document including its blob bytes.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		doc   model.Document
		attrs string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, mime_type, contact_id, property_id, transaction_id, size, attrs, data, created_at
		FROM documents
		WHERE id = ?
	`, id).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.MimeType,
		&doc.ContactID,
		&doc.PropertyID,
		&doc.TransactionID,
		&doc.Size,
		&attrs,
		&doc.Data,
		&doc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	parsed, err := unmarshalAttrs(attrs)
	if err != nil {
		return nil, err
	}
	doc.Attrs = parsed

	return &doc, nil
}

// ListDocuments returns document metadata without blob bytes.
func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, mime_type, contact_id, property_id, transaction_id, size, attrs, created_at
		FROM documents
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		var (
			doc   model.Document
			attrs string
		)
		if err := rows.Scan(
			&doc.ID,
			&doc.Filename,
			&doc.MimeType,
			&doc.ContactID,
			&doc.PropertyID,
			&doc.TransactionID,
			&doc.Size,
			&attrs,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		parsed, err := unmarshalAttrs(attrs)
		if err != nil {
			return nil, err
		}
		doc.Attrs = parsed

		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}
