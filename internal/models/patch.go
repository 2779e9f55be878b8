package models

// Patch structs name the subset of an entity's fields a caller wants
// to overwrite. Nil fields are left untouched. ID, UserID and
// CreatedAt deliberately have no patch field: they are fixed when the
// record is created and can never be rewritten through an update.

// CityServicePatch is a partial update for a CityService.
type CityServicePatch struct {
	Name        *string        `json:"name"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	Location    *string        `json:"location"`
	Contact     *string        `json:"contact"`
	Status      *ServiceStatus `json:"status"`
}

// Apply overwrites the fields named by the patch, field by field.
func (p CityServicePatch) Apply(s *CityService) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Contact != nil {
		s.Contact = *p.Contact
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}

// InfrastructurePatch is a partial update for an InfrastructureItem.
type InfrastructurePatch struct {
	Name                *string    `json:"name"`
	Type                *string    `json:"type"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	Condition           *Condition `json:"condition"`
	MaintenanceSchedule *string    `json:"maintenanceSchedule"`
}

// Apply overwrites the fields named by the patch, field by field.
func (p InfrastructurePatch) Apply(i *InfrastructureItem) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Condition != nil {
		i.Condition = *p.Condition
	}
	if p.MaintenanceSchedule != nil {
		i.MaintenanceSchedule = *p.MaintenanceSchedule
	}
}

// AmenityPatch is a partial update for an Amenity.
type AmenityPatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Hours       *string `json:"hours"`
	Facilities  *string `json:"facilities"`
}

// Apply overwrites the fields named by the patch, field by field.
func (p AmenityPatch) Apply(a *Amenity) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Hours != nil {
		a.Hours = *p.Hours
	}
	if p.Facilities != nil {
		a.Facilities = *p.Facilities
	}
}

// ReportPatch is a partial update for a Report. CreatedAt and UserID
// are immutable and therefore absent.
type ReportPatch struct {
	Category    *ReportCategory `json:"category"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Location    *string         `json:"location"`
	Priority    *Priority       `json:"priority"`
	Status      *ReportStatus   `json:"status"`
}

// Apply overwrites the fields named by the patch, field by field.
func (p ReportPatch) Apply(r *Report) {
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// FeedbackPatch is a partial update for a FeedbackItem.
type FeedbackPatch struct {
	Subject       *string         `json:"subject"`
	Message       *string         `json:"message"`
	Rating        *int            `json:"rating"`
	Status        *FeedbackStatus `json:"status"`
	AdminResponse *string         `json:"adminResponse"`
}

// Apply overwrites the fields named by the patch, then normalizes the
// status so it only ever reads responded when an admin response is
// actually present: recording a non-empty AdminResponse without an
// explicit status moves the item to responded, and responded with no
// response text is rolled back to the item's previous status.
func (p FeedbackPatch) Apply(f *FeedbackItem) {
	prev := f.Status
	if p.Subject != nil {
		f.Subject = *p.Subject
	}
	if p.Message != nil {
		f.Message = *p.Message
	}
	if p.Rating != nil {
		f.Rating = *p.Rating
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.AdminResponse != nil {
		f.AdminResponse = *p.AdminResponse
	}
	if p.Status == nil && p.AdminResponse != nil && f.AdminResponse != "" {
		f.Status = FeedbackResponded
	}
	if f.Status == FeedbackResponded && f.AdminResponse == "" {
		f.Status = prev
	}
}
