package store

import (
	"strings"

	"github.com/cityconnect/portal/internal/models"
)

// SearchAll runs a case-insensitive substring search across the three
// browsable collections. A record matches when the lowercased query
// occurs in any of its designated text fields: name, description and
// category for services and amenities; name, description and type for
// infrastructure. Matches keep their collection's insertion order;
// there is no ranking and no pagination.
//
// An empty or whitespace-only query substring-matches every record
// and therefore returns all of them. Callers that consider blank
// queries invalid must reject them before calling.
func (s *Store) SearchAll(query string) models.SearchResults {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	return models.SearchResults{
		Services: s.services.filter(func(c models.CityService) bool {
			return matches(q, c.Name, c.Description, c.Category)
		}),
		Infrastructure: s.infra.filter(func(i models.InfrastructureItem) bool {
			return matches(q, i.Name, i.Description, i.Type)
		}),
		Amenities: s.amenities.filter(func(a models.Amenity) bool {
			return matches(q, a.Name, a.Description, a.Category)
		}),
	}
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
