package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keyturn-crm/keyturn/internal/model"
)

// CreateTransaction inserts a transaction and returns its assigned id.
// Both record references must be set; that invariant is enforced here as
// well as in the intake workflow.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(txn); err != nil {
		return 0, err
	}

	attrs, err := marshalAttrs(txn.Attrs)
	if err != nil {
		return 0, err
	}
	side := txn.Side
	if side == "" {
		side = model.SideBuy
	}
	stage := txn.Stage
	if stage == "" {
		stage = model.StageLead
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (contact_id, property_id, side, stage, offer_price, close_price, attrs)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, txn.ContactID, txn.PropertyID, side, stage, txn.OfferPrice, txn.ClosePrice, attrs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}
	txn.ID = id

	return id, nil
}

// ListTransactions returns all transactions in insertion order.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contact_id, property_id, side, stage, offer_price, close_price, attrs, created_at
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			t            model.Transaction
			offer, closp sql.NullFloat64
			attrs        string
		)
		if err := rows.Scan(&t.ID, &t.ContactID, &t.PropertyID, &t.Side, &t.Stage, &offer, &closp, &attrs, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if offer.Valid {
			v := offer.Float64
			t.OfferPrice = &v
		}
		if closp.Valid {
			v := closp.Float64
			t.ClosePrice = &v
		}

		parsed, err := unmarshalAttrs(attrs)
		if err != nil {
			return nil, err
		}
		t.Attrs = parsed

		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
