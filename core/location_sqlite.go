package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLiteLocationStore struct {
	db *sql.DB
}

func NewSQLiteLocationStore(db *sql.DB) *SQLiteLocationStore {
	return &SQLiteLocationStore{db: db}
}

func (s *SQLiteLocationStore) CreateLocation(ctx context.Context, location Location) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO locations (id, name, description, latitude, longitude) VALUES (@id, @name, @description, @latitude, @longitude)",
		sql.Named("id", location.ID),
		sql.Named("name", location.Name),
		sql.Named("description", location.Description),
		sql.Named("latitude", location.Latitude),
		sql.Named("longitude", location.Longitude))
	if err != nil {
		return fmt.Errorf("creating location: %w", err)
	}
	return nil
}

func (s *SQLiteLocationStore) GetLocation(ctx context.Context, id string) (*Location, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, latitude, longitude FROM locations WHERE id = ? LIMIT 1", id)

	location := new(Location)
	err := row.Scan(&location.ID, &location.Name, &location.Description, &location.Latitude, &location.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning location: %w", err)
	}
	return location, nil
}

func (s *SQLiteLocationStore) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, latitude, longitude FROM locations ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

func (s *SQLiteLocationStore) UpdateLocation(ctx context.Context, location Location) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE locations SET name = @name, description = @description, latitude = @latitude, longitude = @longitude WHERE id = @id",
		sql.Named("name", location.Name),
		sql.Named("description", location.Description),
		sql.Named("latitude", location.Latitude),
		sql.Named("longitude", location.Longitude),
		sql.Named("id", location.ID))
	if err != nil {
		return false, fmt.Errorf("updating location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteLocationStore) DeleteLocation(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteLocationStore) SearchLocations(ctx context.Context, q string, limit int) ([]Location, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, latitude, longitude FROM locations WHERE name LIKE @q OR description LIKE @q LIMIT @limit",
		sql.Named("q", "%"+q+"%"), sql.Named("limit", limit))
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

func scanLocations(rows *sql.Rows) ([]Location, error) {
	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
