package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/barhop/barhop/internal/domain"
)

// VenueStore implements domain.VenueStore on PostgreSQL.
type VenueStore struct {
	client *Client
}

// NewVenueStore creates a VenueStore backed by the given Client.
func NewVenueStore(client *Client) *VenueStore {
	return &VenueStore{client: client}
}

// ListVenues returns every venue, ordered by name.
func (s *VenueStore) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	const q = `
		SELECT id, name, address, city, latitude, longitude, tags, image_url
		FROM venues
		ORDER BY name`

	rows, err := s.client.Pool().Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: list venues: %w", err)
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City,
			&v.Latitude, &v.Longitude, &v.Tags, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("postgres: scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list venues rows: %w", err)
	}
	return venues, nil
}

// GetVenue returns one venue by ID.
func (s *VenueStore) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	const q = `
		SELECT id, name, address, city, latitude, longitude, tags, image_url
		FROM venues
		WHERE id = $1`

	var v domain.Venue
	err := s.client.Pool().QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.Address,
		&v.City, &v.Latitude, &v.Longitude, &v.Tags, &v.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Venue{}, fmt.Errorf("postgres: venue %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Venue{}, fmt.Errorf("postgres: get venue %q: %w", id, err)
	}
	return v, nil
}

var _ domain.VenueStore = (*VenueStore)(nil)
