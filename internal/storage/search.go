package storage

import (
	"context"
	"fmt"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// SearchContactsByAttr returns contacts whose attrs map carries the given
// key with exactly the given string value.
func (s *SQLiteStorage) SearchContactsByAttr(ctx context.Context, key, equals string) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	// The key is spliced into the JSON path as a bind parameter, never into
	// the SQL text.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, status, attrs, created_at
		FROM contacts
		WHERE json_extract(attrs, '$.' || ?) = ?
		ORDER BY id
	`, key, equals)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by attr: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanContacts(rows)
}

// SearchPropertiesByNumberAttr returns properties whose attrs map carries
// the given key with a numeric value >= the threshold.
func (s *SQLiteStorage) SearchPropertiesByNumberAttr(ctx context.Context, key string, gte float64) ([]model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, city, state_province, country, status, attrs, created_at
		FROM properties
		WHERE json_extract(attrs, '$.' || ?) IS NOT NULL
		  AND CAST(json_extract(attrs, '$.' || ?) AS REAL) >= ?
		ORDER BY id
	`, key, key, gte)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties by attr: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}
