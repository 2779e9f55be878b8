package store

import (
	"testing"
)

func TestSearchAll_SingleAmenityMatch(t *testing.T) {
	s := newTestStore(t, nil)

	// "park" occurs only in the seeded Central Park amenity.
	res := s.SearchAll("park")
	if len(res.Amenities) != 1 || res.Amenities[0].Name != "Central Park" {
		t.Errorf("expected exactly the Central Park amenity, got %+v", res.Amenities)
	}
	if len(res.Services) != 0 || len(res.Infrastructure) != 0 {
		t.Errorf("expected no matches in the other collections, got %+v / %+v",
			res.Services, res.Infrastructure)
	}
}

func TestSearchAll_CaseInsensitive(t *testing.T) {
	s := newTestStore(t, nil)

	for _, q := range []string{"PARK", "Park", "pArK"} {
		res := s.SearchAll(q)
		if len(res.Amenities) != 1 {
			t.Errorf("query %q: expected 1 amenity, got %d", q, len(res.Amenities))
		}
	}
}

func TestSearchAll_FieldCoverage(t *testing.T) {
	s := newTestStore(t, nil)

	// Category on services.
	if res := s.SearchAll("healthcare"); len(res.Services) != 1 {
		t.Errorf("category not searched on services: %+v", res.Services)
	}
	// Type on infrastructure.
	if res := s.SearchAll("roads"); len(res.Infrastructure) != 1 {
		t.Errorf("type not searched on infrastructure: %+v", res.Infrastructure)
	}
	// Description on amenities.
	if res := s.SearchAll("swimming"); len(res.Amenities) != 1 {
		t.Errorf("description not searched on amenities: %+v", res.Amenities)
	}
}

func TestSearchAll_InsertionOrderPreserved(t *testing.T) {
	s := newTestStore(t, nil)

	// Every seeded service description or category contains a vowel
	// common to all three; use a query matching all of them.
	res := s.SearchAll("city")
	var names []string
	for _, svc := range res.Services {
		names = append(names, svc.Name)
	}
	if len(names) < 2 {
		t.Fatalf("expected multiple service matches, got %v", names)
	}
	if names[0] != "City Hospital" {
		t.Errorf("matches not in insertion order: %v", names)
	}
}

// Documented contract: a blank query substring-matches every record.
// Boundaries that consider blank queries invalid must reject them
// before calling.
func TestSearchAll_EmptyQueryMatchesEverything(t *testing.T) {
	s := newTestStore(t, nil)

	res := s.SearchAll("")
	if len(res.Services) != 3 || len(res.Infrastructure) != 3 || len(res.Amenities) != 3 {
		t.Errorf("empty query should match all records, got %d/%d/%d",
			len(res.Services), len(res.Infrastructure), len(res.Amenities))
	}
}

func TestSearchAll_NoMatches(t *testing.T) {
	s := newTestStore(t, nil)

	res := s.SearchAll("zzzzzz")
	if len(res.Services)+len(res.Infrastructure)+len(res.Amenities) != 0 {
		t.Errorf("expected no matches, got %+v", res)
	}
}
