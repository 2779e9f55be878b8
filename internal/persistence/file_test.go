package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cityconnect/portal/internal/models"
)

func testState() models.State {
	id := models.Identity{ID: "u1", Email: "a@x.com", FullName: "A", Role: models.RoleAdmin}
	return models.State{
		Users:    []models.User{{ID: "u1", Email: "a@x.com", PasswordHash: "h", FullName: "A", Role: models.RoleAdmin}},
		Services: []models.CityService{{ID: "s1", Name: "Hospital", Status: models.ServiceActive}},
		Amenities: []models.Amenity{
			{ID: "a1", Name: "Central Park", Category: "parks"},
		},
		Identity: &id,
	}
}

func TestFileGateway_LoadAbsent(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))

	_, found, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Errorf("expected found=false for a missing blob")
	}
}

func TestFileGateway_RoundTrip(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))
	want := testState()

	if err := g.Save(context.Background(), want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, found, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatalf("expected found=true after a save")
	}

	if len(got.Users) != 1 || got.Users[0].PasswordHash != "h" {
		t.Errorf("users did not round-trip: %+v", got.Users)
	}
	if len(got.Services) != 1 || got.Services[0].Status != models.ServiceActive {
		t.Errorf("services did not round-trip: %+v", got.Services)
	}
	if got.Identity == nil || got.Identity.ID != "u1" {
		t.Errorf("identity did not round-trip: %+v", got.Identity)
	}
}

func TestFileGateway_SaveReplacesPreviousBlob(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))

	if err := g.Save(context.Background(), testState()); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second := testState()
	second.Services = append(second.Services, models.CityService{ID: "s2", Name: "Library"})
	if err := g.Save(context.Background(), second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, _, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Services) != 2 {
		t.Errorf("expected the second snapshot, got %+v", got.Services)
	}

	// The temp file used for the atomic replace must be gone.
	entries, err := os.ReadDir(filepath.Dir(g.Path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileGateway_CorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	g := NewFileGateway(path)
	_, _, err := g.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestNewFileGateway_DefaultPath(t *testing.T) {
	g := NewFileGateway("")
	if g.Path != StateKey+".json" {
		t.Errorf("unexpected default path: %s", g.Path)
	}
}
