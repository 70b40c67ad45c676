package model

import "time"

// Property represents a listing or prospect address on the books.
type Property struct {
	CreatedAt     time.Time      `json:"created_at"`
	Attrs         map[string]any `json:"attrs"`
	Address       string         `json:"address"`
	City          string         `json:"city,omitempty"`
	StateProvince string         `json:"state_province,omitempty"`
	Country       string         `json:"country"`
	Status        string         `json:"status"`
	ID            int64          `json:"id"`
}
