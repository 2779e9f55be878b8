package store

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/cityconnect/portal/internal/models"
)

// Demo accounts seeded on first start.
const (
	SeedAdminEmail    = "admin@smartcity.com"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "user@smartcity.com"
	SeedUserPassword  = "user123"
)

// seed fills the collections with the default demo dataset. It runs
// only when no persisted state exists, so it does not save: the first
// real mutation will. Seed records go through the regular id
// generator like everything else.
func (s *Store) seed() {
	s.users.add(models.User{
		ID:           s.newID(),
		Email:        SeedAdminEmail,
		PasswordHash: mustHash(SeedAdminPassword),
		FullName:     "Admin User",
		Role:         models.RoleAdmin,
	})
	s.users.add(models.User{
		ID:           s.newID(),
		Email:        SeedUserEmail,
		PasswordHash: mustHash(SeedUserPassword),
		FullName:     "John Doe",
		Role:         models.RoleUser,
	})

	s.services.add(models.CityService{
		ID: s.newID(), Name: "City Hospital", Category: "healthcare",
		Description: "24/7 emergency services and general healthcare",
		Location:    "123 Health St", Contact: "555-0100", Status: models.ServiceActive,
	})
	s.services.add(models.CityService{
		ID: s.newID(), Name: "Central Library", Category: "education",
		Description: "Public library with extensive collection",
		Location:    "456 Book Ave", Contact: "555-0200", Status: models.ServiceActive,
	})
	s.services.add(models.CityService{
		ID: s.newID(), Name: "Metro Transit", Category: "transportation",
		Description: "City-wide public transportation",
		Location:    "Downtown Hub", Contact: "555-0300", Status: models.ServiceActive,
	})

	s.infra.add(models.InfrastructureItem{
		ID: s.newID(), Name: "Main Bridge", Type: "bridges",
		Description: "Primary river crossing", Location: "River District",
		Condition: models.ConditionGood, MaintenanceSchedule: "Quarterly",
	})
	s.infra.add(models.InfrastructureItem{
		ID: s.newID(), Name: "Highway 101", Type: "roads",
		Description: "Main highway through city", Location: "North-South corridor",
		Condition: models.ConditionExcellent, MaintenanceSchedule: "Annual",
	})
	s.infra.add(models.InfrastructureItem{
		ID: s.newID(), Name: "Water Treatment Plant", Type: "utilities",
		Description: "City water processing facility", Location: "West Side",
		Condition: models.ConditionFair, MaintenanceSchedule: "Monthly",
	})

	s.amenities.add(models.Amenity{
		ID: s.newID(), Name: "Central Park", Category: "parks",
		Description: "Large urban park with trails", Location: "City Center",
		Hours: "6 AM - 10 PM", Facilities: "Playground, trails, picnic areas",
	})
	s.amenities.add(models.Amenity{
		ID: s.newID(), Name: "Community Center", Category: "community centers",
		Description: "Recreation and community programs", Location: "789 Community Blvd",
		Hours: "8 AM - 8 PM", Facilities: "Gym, meeting rooms, classes",
	})
	s.amenities.add(models.Amenity{
		ID: s.newID(), Name: "Public Pool", Category: "recreation",
		Description: "Olympic-sized swimming pool", Location: "321 Swim Lane",
		Hours: "6 AM - 9 PM", Facilities: "Pool, locker rooms, sauna",
	})
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on impossible cost values.
		panic(err)
	}
	return string(hash)
}
