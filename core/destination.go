package core

import (
	"context"
	"time"
)

// Destination is a place a user saved for themselves. Unlike locations,
// destinations are owner-scoped: every query is keyed by the owning
// username and a caller can never see or delete another user's records.
type Destination struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Category   string    `json:"category"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

type DestinationStore interface {
	CreateDestination(ctx context.Context, destination Destination) error

	ListDestinationsByOwner(ctx context.Context, owner string) ([]Destination, error)

	// DeleteDestination removes the record only when it belongs to owner and
	// reports whether a row was deleted.
	DeleteDestination(ctx context.Context, id, owner string) (bool, error)
}
