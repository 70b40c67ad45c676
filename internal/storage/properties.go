package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// CreateProperty inserts a property and returns its assigned id.
func (s *SQLiteStorage) CreateProperty(ctx context.Context, property *model.Property) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateProperty(property); err != nil {
		return 0, err
	}

	attrs, err := marshalAttrs(property.Attrs)
	if err != nil {
		return 0, err
	}
	country := property.Country
	if country == "" {
		country = "Canada"
	}
	status := property.Status
	if status == "" {
		status = "prospect"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (address, city, state_province, country, status, attrs)
		VALUES (?, ?, ?, ?, ?, ?)
	`, property.Address, nullString(property.City), nullString(property.StateProvince), country, status, attrs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert property: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get property id: %w", err)
	}
	property.ID = id

	return id, nil
}

// ListProperties returns all properties in insertion order.
func (s *SQLiteStorage) ListProperties(ctx context.Context) ([]model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, city, state_province, country, status, attrs, created_at
		FROM properties
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProperties(rows)
}

func scanProperties(rows *sql.Rows) ([]model.Property, error) {
	var properties []model.Property
	for rows.Next() {
		var (
			p           model.Property
			city, state sql.NullString
			attrs       string
		)
		if err := rows.Scan(&p.ID, &p.Address, &city, &state, &p.Country, &p.Status, &attrs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		p.City = city.String
		p.StateProvince = state.String

		parsed, err := unmarshalAttrs(attrs)
		if err != nil {
			return nil, err
		}
		p.Attrs = parsed

		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}
