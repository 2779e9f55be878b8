// Package models defines the core data structures of the city portal:
// users and their session identity, the three browsable catalogs
// (services, infrastructure, amenities), citizen reports and feedback,
// plus the typed patch structs used for partial updates.
package models

import "time"

// Role identifies the privilege level of a user.
type Role string

const (
	// RoleUser is a regular citizen account.
	RoleUser Role = "user"
	// RoleAdmin is a city administrator account.
	RoleAdmin Role = "admin"
)

// User represents a portal account with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the login address; unique across all users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password,
	// or empty for accounts created through an external identity
	// provider. It is serialized into state snapshots but must
	// never leave the store through an Identity.
	PasswordHash string `json:"passwordHash,omitempty"`
	// FullName is the display name of the user.
	FullName string `json:"fullName"`
	// Role is fixed at creation time.
	Role Role `json:"role"`
}

// Identity is the public view of a logged-in user: a copy of the
// User record with the password hash stripped. At most one Identity
// is active at a time.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Identity returns the secret-free view of the user.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// ExternalProfile is an already-verified identity profile handed over
// by an external provider. Token and signature verification happen
// before this struct is built; the store only consumes the result.
type ExternalProfile struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ServiceStatus is the operational state of a city service.
type ServiceStatus string

const (
	ServiceActive      ServiceStatus = "active"
	ServiceInactive    ServiceStatus = "inactive"
	ServiceMaintenance ServiceStatus = "maintenance"
)

// CityService is a municipal service listed in the portal catalog.
type CityService struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Contact     string        `json:"contact"`
	Status      ServiceStatus `json:"status"`
}

// Condition grades the physical state of an infrastructure item.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// InfrastructureItem is a piece of city infrastructure (roads,
// bridges, utilities) tracked by the portal.
type InfrastructureItem struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	Condition           Condition `json:"condition"`
	MaintenanceSchedule string    `json:"maintenanceSchedule"`
}

// Amenity is a public amenity such as a park or community center.
type Amenity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Hours       string `json:"hours"`
	Facilities  string `json:"facilities"`
}

// ReportCategory classifies what a citizen report is about.
type ReportCategory string

const (
	ReportService        ReportCategory = "service"
	ReportInfrastructure ReportCategory = "infrastructure"
	ReportAmenity        ReportCategory = "amenity"
	ReportOther          ReportCategory = "other"
)

// Priority is the urgency a citizen assigned to a report.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ReportStatus tracks the handling state of a report.
type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in_progress"
	ReportResolved   ReportStatus = "resolved"
	ReportClosed     ReportStatus = "closed"
)

// Report is an issue submitted by a citizen. Status always starts at
// pending; CreatedAt is set once when the report is stored and is
// never overwritten afterwards.
type Report struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Category    ReportCategory `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Priority    Priority       `json:"priority"`
	Status      ReportStatus   `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// FeedbackStatus tracks the handling state of a feedback item.
type FeedbackStatus string

const (
	FeedbackNew       FeedbackStatus = "new"
	FeedbackReviewed  FeedbackStatus = "reviewed"
	FeedbackResponded FeedbackStatus = "responded"
)

// FeedbackItem is a rating-plus-message submitted by a citizen.
// Status starts at new and becomes responded only once an admin
// response has been recorded. The store does not enforce the 1..5
// rating range; that is the job of the boundary validating input.
type FeedbackItem struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Subject       string         `json:"subject"`
	Message       string         `json:"message"`
	Rating        int            `json:"rating"`
	Status        FeedbackStatus `json:"status"`
	AdminResponse string         `json:"adminResponse"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// State is the complete portal state as written to and read from the
// persistence gateway: every collection plus the active identity.
type State struct {
	Users          []User               `json:"users"`
	Services       []CityService        `json:"cityServices"`
	Infrastructure []InfrastructureItem `json:"infrastructure"`
	Amenities      []Amenity            `json:"amenities"`
	Reports        []Report             `json:"reports"`
	Feedback       []FeedbackItem       `json:"feedback"`
	Identity       *Identity            `json:"currentIdentity"`
}

// SearchResults groups the matches of a free-text search by the
// collection they came from.
type SearchResults struct {
	Services       []CityService        `json:"services"`
	Infrastructure []InfrastructureItem `json:"infrastructure"`
	Amenities      []Amenity            `json:"amenities"`
}
