// Package static provides the built-in venue listing used when no database
// is configured.
package static

import (
	"context"
	"fmt"
	"sort"

	"github.com/barhop/barhop/internal/domain"
)

// venues is the seed listing. Tags name the watch events each venue hosts
// and feed straight into market resolution queries.
var venues = []domain.Venue{
	{
		ID:        "finnertys",
		Name:      "Finnerty's",
		Address:   "18 W 33rd St",
		City:      "New York",
		Latitude:  40.7484,
		Longitude: -73.9876,
		Tags:      []string{"Champions League", "March Madness"},
	},
	{
		ID:        "stans-sports-bar",
		Name:      "Stan's Sports Bar",
		Address:   "836 River Ave",
		City:      "New York",
		Latitude:  40.8296,
		Longitude: -73.9262,
		Tags:      []string{"Yankees Watch Party", "NBA Finals"},
	},
	{
		ID:        "the-hairy-lemon",
		Name:      "The Hairy Lemon",
		Address:   "28 Avenue B",
		City:      "New York",
		Latitude:  40.7252,
		Longitude: -73.9838,
		Tags:      []string{"Premier League", "UFC Fight Night"},
	},
	{
		ID:        "stout",
		Name:      "Stout",
		Address:   "90 John St",
		City:      "New York",
		Latitude:  40.7085,
		Longitude: -74.0063,
		Tags:      []string{"NFL Sunday Ticket", "March Madness", "Oscars Watch Party"},
	},
	{
		ID:        "harlem-tavern",
		Name:      "Harlem Tavern",
		Address:   "2153 Frederick Douglass Blvd",
		City:      "New York",
		Latitude:  40.8027,
		Longitude: -73.9558,
		Tags:      []string{"NFL Sunday Ticket", "Champions League"},
	},
	{
		ID:        "the-irish-american",
		Name:      "The Irish American",
		Address:   "17 John St",
		City:      "New York",
		Latitude:  40.7088,
		Longitude: -74.0063,
		Tags:      []string{"NFL Sunday Ticket", "Oscars Watch Party"},
	},
}

// VenueStore serves the embedded venue listing.
type VenueStore struct {
	byID  map[string]domain.Venue
	order []domain.Venue
}

// NewVenueStore creates a VenueStore over the embedded listing.
func NewVenueStore() *VenueStore {
	s := &VenueStore{byID: make(map[string]domain.Venue, len(venues))}
	s.order = make([]domain.Venue, len(venues))
	copy(s.order, venues)
	sort.Slice(s.order, func(i, j int) bool { return s.order[i].Name < s.order[j].Name })
	for _, v := range venues {
		s.byID[v.ID] = v
	}
	return s
}

// ListVenues returns every venue, ordered by name.
func (s *VenueStore) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	out := make([]domain.Venue, len(s.order))
	copy(out, s.order)
	return out, nil
}

// GetVenue returns one venue by ID.
func (s *VenueStore) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	v, ok := s.byID[id]
	if !ok {
		return domain.Venue{}, fmt.Errorf("static: venue %q: %w", id, domain.ErrNotFound)
	}
	return v, nil
}

var _ domain.VenueStore = (*VenueStore)(nil)
