// Package projects tracks client engagements that invoices can be grouped
// under.
package projects

import (
	"time"

	"github.com/google/uuid"
)

// Project is a client engagement.
type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	ClientID    uuid.UUID  `json:"client_id"`
	Status      string     `json:"status"`
	Budget      *float64   `json:"budget,omitempty"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Project statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOnHold    = "on_hold"
	StatusCancelled = "cancelled"
)
