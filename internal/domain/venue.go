package domain

import "context"

// Venue is one bar or watch location shown in the front-end listings.
type Venue struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lng"`
	Tags      []string `json:"tags,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// VenueStore provides the read-only venue listing data.
type VenueStore interface {
	ListVenues(ctx context.Context) ([]Venue, error)
	GetVenue(ctx context.Context, id string) (Venue, error)
}
