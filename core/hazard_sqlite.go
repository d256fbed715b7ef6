package core

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteHazardStore struct {
	db *sql.DB
}

func NewSQLiteHazardStore(db *sql.DB) *SQLiteHazardStore {
	return &SQLiteHazardStore{db: db}
}

func (s *SQLiteHazardStore) CreateHazard(ctx context.Context, hazard Hazard) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO hazards (id, category, description, photo_url, latitude, longitude, reported_by, created_at)
		 VALUES (@id, @category, @description, @photo_url, @latitude, @longitude, @reported_by, @created_at)`,
		sql.Named("id", hazard.ID),
		sql.Named("category", hazard.Category),
		sql.Named("description", hazard.Description),
		sql.Named("photo_url", hazard.PhotoURL),
		sql.Named("latitude", hazard.Latitude),
		sql.Named("longitude", hazard.Longitude),
		sql.Named("reported_by", hazard.ReportedBy),
		sql.Named("created_at", hazard.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating hazard: %w", err)
	}
	return nil
}

func (s *SQLiteHazardStore) ListHazards(ctx context.Context) ([]Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, description, photo_url, latitude, longitude, reported_by, created_at
		 FROM hazards ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying hazards: %w", err)
	}
	defer rows.Close()

	return scanHazards(rows)
}

func (s *SQLiteHazardStore) SearchHazards(ctx context.Context, q string, limit int) ([]Hazard, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, description, photo_url, latitude, longitude, reported_by, created_at
		 FROM hazards WHERE category LIKE @q OR description LIKE @q LIMIT @limit`,
		sql.Named("q", "%"+q+"%"), sql.Named("limit", limit))
	if err != nil {
		return nil, fmt.Errorf("querying hazards: %w", err)
	}
	defer rows.Close()

	return scanHazards(rows)
}

func scanHazards(rows *sql.Rows) ([]Hazard, error) {
	var hazards []Hazard
	for rows.Next() {
		var h Hazard
		if err := rows.Scan(&h.ID, &h.Category, &h.Description, &h.PhotoURL,
			&h.Latitude, &h.Longitude, &h.ReportedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning hazard: %w", err)
		}
		hazards = append(hazards, h)
	}
	return hazards, rows.Err()
}
