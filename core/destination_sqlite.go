package core

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteDestinationStore struct {
	db *sql.DB
}

func NewSQLiteDestinationStore(db *sql.DB) *SQLiteDestinationStore {
	return &SQLiteDestinationStore{db: db}
}

func (s *SQLiteDestinationStore) CreateDestination(ctx context.Context, destination Destination) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO destinations (id, owner, name, address, category, latitude, longitude, is_favorite, created_at)
		 VALUES (@id, @owner, @name, @address, @category, @latitude, @longitude, @is_favorite, @created_at)`,
		sql.Named("id", destination.ID),
		sql.Named("owner", destination.Owner),
		sql.Named("name", destination.Name),
		sql.Named("address", destination.Address),
		sql.Named("category", destination.Category),
		sql.Named("latitude", destination.Latitude),
		sql.Named("longitude", destination.Longitude),
		sql.Named("is_favorite", destination.IsFavorite),
		sql.Named("created_at", destination.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	return nil
}

func (s *SQLiteDestinationStore) ListDestinationsByOwner(ctx context.Context, owner string) ([]Destination, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, name, address, category, latitude, longitude, is_favorite, created_at
		 FROM destinations WHERE owner = ? ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	var destinations []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Owner, &d.Name, &d.Address, &d.Category,
			&d.Latitude, &d.Longitude, &d.IsFavorite, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning destination: %w", err)
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (s *SQLiteDestinationStore) DeleteDestination(ctx context.Context, id, owner string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM destinations WHERE id = @id AND owner = @owner",
		sql.Named("id", id), sql.Named("owner", owner))
	if err != nil {
		return false, fmt.Errorf("deleting destination: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
