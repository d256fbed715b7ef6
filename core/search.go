package core

import (
	"context"
	"errors"
	"fmt"
)

// SearchKind selects what a search query runs against.
type SearchKind string

const (
	SearchPlaces  SearchKind = "places"
	SearchUsers   SearchKind = "users"
	SearchHazards SearchKind = "hazards"
)

var ErrUnknownSearchKind = errors.New("unknown search kind")

// SearchResult is the uniform shape returned for every kind. Latitude and
// Longitude are zero for kinds without a position (users).
type SearchResult struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

const searchLimit = 20

// SearchService fans a query out to the store matching the requested kind.
type SearchService struct {
	locations LocationStore
	users     UserStore
	hazards   HazardStore
}

func NewSearchService(locations LocationStore, users UserStore, hazards HazardStore) *SearchService {
	return &SearchService{
		locations: locations,
		users:     users,
		hazards:   hazards,
	}
}

func (s *SearchService) Search(ctx context.Context, query string, kind SearchKind) ([]SearchResult, error) {
	switch kind {
	case SearchPlaces:
		locations, err := s.locations.SearchLocations(ctx, query, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("searching locations: %w", err)
		}
		results := make([]SearchResult, 0, len(locations))
		for _, l := range locations {
			results = append(results, SearchResult{
				ID:          l.ID,
				Name:        l.Name,
				Description: l.Description,
				Latitude:    l.Latitude,
				Longitude:   l.Longitude,
			})
		}
		return results, nil

	case SearchUsers:
		profiles, err := s.users.SearchUsers(ctx, query, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("searching users: %w", err)
		}
		results := make([]SearchResult, 0, len(profiles))
		for _, p := range profiles {
			results = append(results, SearchResult{
				ID:   p.Username,
				Name: p.Username,
			})
		}
		return results, nil

	case SearchHazards:
		hazards, err := s.hazards.SearchHazards(ctx, query, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("searching hazards: %w", err)
		}
		results := make([]SearchResult, 0, len(hazards))
		for _, h := range hazards {
			results = append(results, SearchResult{
				ID:          h.ID,
				Name:        h.Category,
				Description: h.Description,
				Latitude:    h.Latitude,
				Longitude:   h.Longitude,
			})
		}
		return results, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSearchKind, kind)
	}
}
