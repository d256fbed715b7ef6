package core

import (
	"context"
	"time"
)

// Hazard is a road hazard reported by an authenticated user. ReportedBy is
// always the verified token subject, never client-supplied.
type Hazard struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ReportedBy  string    `json:"reported_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type HazardStore interface {
	CreateHazard(ctx context.Context, hazard Hazard) error

	ListHazards(ctx context.Context) ([]Hazard, error)

	// SearchHazards returns hazards whose category or description contains q.
	SearchHazards(ctx context.Context, q string, limit int) ([]Hazard, error)
}
