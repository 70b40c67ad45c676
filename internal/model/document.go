package model

import "time"

// Document is a stored file blob, optionally linked to a contact, property,
// or transaction. Data is only populated when the blob itself is fetched;
// listings carry metadata alone.
type Document struct {
	CreatedAt     time.Time      `json:"created_at"`
	Attrs         map[string]any `json:"attrs"`
	ID            string         `json:"id"`
	Filename      string         `json:"filename"`
	MimeType      string         `json:"mime_type"`
	ContactID     *int64         `json:"contact_id,omitempty"`
	PropertyID    *int64         `json:"property_id,omitempty"`
	TransactionID *int64         `json:"transaction_id,omitempty"`
	Data          []byte         `json:"-"`
	Size          int64          `json:"size"`
}
