// Package model defines the core domain models used throughout the application.
package model

// EntityKind identifies which kind of record a piece of text describes.
type EntityKind string

// Entity kind constants.
const (
	KindContact     EntityKind = "contact"
	KindProperty    EntityKind = "property"
	KindTransaction EntityKind = "transaction"
	KindUnknown     EntityKind = "unknown"
)

// Draft is an unpersisted candidate record produced by classification and
// awaiting confirmation. It is a loosely typed bag tagged with the guessed
// kind: only the fields relevant to that kind are populated, and anything
// that has no dedicated field lands in Attrs. A draft never carries an
// identifier; identity is assigned by storage on commit.
//
// The same struct serves every kind because a caller may commit a draft
// under a different kind than the one guessed (that is the whole point of
// the disambiguation round-trip).
type Draft struct {
	Attrs map[string]any `json:"attrs,omitempty"`

	Kind EntityKind `json:"type"`

	// Contact fields.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// Property fields.
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
	Country       string `json:"country,omitempty"`

	// Shared by contact ("new") and property ("prospect").
	Status string `json:"status,omitempty"`

	// Transaction fields.
	Side       string   `json:"side,omitempty"`
	Stage      string   `json:"stage,omitempty"`
	OfferPrice *float64 `json:"offer_price,omitempty"`
	ClosePrice *float64 `json:"close_price,omitempty"`
	ContactID  int64    `json:"contact_id,omitempty"`
	PropertyID int64    `json:"property_id,omitempty"`
}

// Classification is the outcome of one classify pass: a kind guess plus the
// draft built from the text. Immutable once produced; the caller round-trips
// the draft between propose and commit.
type Classification struct {
	Draft Draft
	Kind  EntityKind
}

// Note returns the original input text carried in attrs, if any.
func (d *Draft) Note() string {
	if d.Attrs == nil {
		return ""
	}
	if note, ok := d.Attrs["note"].(string); ok {
		return note
	}
	return ""
}
