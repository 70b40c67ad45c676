package model

import "time"

// Transaction side constants.
const (
	SideBuy   = "buy"
	SideSell  = "sell"
	SideLease = "lease"
)

// StageLead is the default stage for a freshly created transaction.
const StageLead = "lead"

// Transaction represents a deal linking a contact to a property. Both
// references are mandatory; there is no such thing as a dangling deal.
type Transaction struct {
	CreatedAt  time.Time      `json:"created_at"`
	Attrs      map[string]any `json:"attrs"`
	OfferPrice *float64       `json:"offer_price,omitempty"`
	ClosePrice *float64       `json:"close_price,omitempty"`
	Side       string         `json:"side"`
	Stage      string         `json:"stage"`
	ID         int64          `json:"id"`
	ContactID  int64          `json:"contact_id"`
	PropertyID int64          `json:"property_id"`
}
