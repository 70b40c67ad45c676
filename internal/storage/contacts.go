package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// CreateContact inserts a contact and returns its assigned id.
func (s *SQLiteStorage) CreateContact(ctx context.Context, contact *model.Contact) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateContact(contact); err != nil {
		return 0, err
	}

	attrs, err := marshalAttrs(contact.Attrs)
	if err != nil {
		return 0, err
	}
	status := contact.Status
	if status == "" {
		status = "new"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, phone, status, attrs)
		VALUES (?, ?, ?, ?, ?, ?)
	`, contact.FirstName, contact.LastName, nullString(contact.Email), nullString(contact.Phone), status, attrs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get contact id: %w", err)
	}
	contact.ID = id

	return id, nil
}

// ListContacts returns all contacts in insertion order.
func (s *SQLiteStorage) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, status, attrs, created_at
		FROM contacts
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanContacts(rows)
}

func scanContacts(rows *sql.Rows) ([]model.Contact, error) {
	var contacts []model.Contact
	for rows.Next() {
		var (
			c           model.Contact
			email, phone sql.NullString
			attrs       string
		)
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &email, &phone, &c.Status, &attrs, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.Email = email.String
		c.Phone = phone.String

		parsed, err := unmarshalAttrs(attrs)
		if err != nil {
			return nil, err
		}
		c.Attrs = parsed

		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
