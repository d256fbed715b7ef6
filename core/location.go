package core

import (
	"context"
)

// Location is a shared geographic point of interest. Locations are public
// data: they carry no owner.
type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type LocationStore interface {
	CreateLocation(ctx context.Context, location Location) error

	// GetLocation returns the location, or (nil, nil) when absent.
	GetLocation(ctx context.Context, id string) (*Location, error)

	ListLocations(ctx context.Context) ([]Location, error)

	// UpdateLocation reports whether a row was updated.
	UpdateLocation(ctx context.Context, location Location) (bool, error)

	// DeleteLocation reports whether a row was deleted.
	DeleteLocation(ctx context.Context, id string) (bool, error)

	// SearchLocations returns locations whose name or description contains q.
	SearchLocations(ctx context.Context, q string, limit int) ([]Location, error)
}
