package model

import "time"

// Contact represents a person the agent works with.
type Contact struct {
	CreatedAt time.Time      `json:"created_at"`
	Attrs     map[string]any `json:"attrs"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Status    string         `json:"status"`
	ID        int64          `json:"id"`
}
