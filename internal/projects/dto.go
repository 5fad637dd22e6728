package projects

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	ClientID    uuid.UUID  `json:"client_id" validate:"required"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// UpdateProjectRequest updates project fields.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active completed on_hold cancelled"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Currency    *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// ListProjectsRequest filters the project listing.
type ListProjectsRequest struct {
	Status   string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}
