// Package store implements the portal's embedded datastore: typed
// collections for every record kind, single-principal session
// tracking, free-text search, and whole-state persistence through a
// gateway. The store is an explicit object constructed once per
// process and passed to every consumer; it holds no package-level
// state.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cityconnect/portal/internal/models"
	"github.com/cityconnect/portal/internal/persistence"
)

// ErrNotFound reports an update or delete against an id that is not
// in the collection. Callers treat it as a no-op, not a failure.
var ErrNotFound = errors.New("record not found")

// Store owns all collections plus the active session identity, guarded
// by a single mutex. Every mutating operation persists the full state
// through the gateway before returning; when that save fails the
// mutation still stands — the in-memory state stays authoritative and
// the save error is both logged and returned alongside the already
// computed result. This weak-durability trade-off is deliberate: a
// demo portal prefers a live session over a lost keystroke.
//
// A nil gateway keeps the store memory-only for the process lifetime.
type Store struct {
	mu      sync.Mutex
	gateway persistence.Gateway
	log     *zap.Logger

	users     *collection[models.User]
	services  *collection[models.CityService]
	infra     *collection[models.InfrastructureItem]
	amenities *collection[models.Amenity]
	reports   *collection[models.Report]
	feedback  *collection[models.FeedbackItem]
	identity  *models.Identity

	newID func() string
	now   func() time.Time
}

// New constructs the store and restores persisted state through the
// gateway. A missing blob seeds the default demo data; a corrupt blob
// is logged and treated exactly like a missing one. New never fails.
func New(gw persistence.Gateway, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		gateway:   gw,
		log:       log,
		users:     newCollection(func(u models.User) string { return u.ID }),
		services:  newCollection(func(c models.CityService) string { return c.ID }),
		infra:     newCollection(func(i models.InfrastructureItem) string { return i.ID }),
		amenities: newCollection(func(a models.Amenity) string { return a.ID }),
		reports:   newCollection(func(r models.Report) string { return r.ID }),
		feedback:  newCollection(func(f models.FeedbackItem) string { return f.ID }),
		newID:     newID,
		now:       time.Now,
	}

	if gw == nil {
		s.seed()
		return s
	}

	st, found, err := gw.Load(context.Background())
	switch {
	case err != nil:
		s.log.Warn("failed to restore persisted state, starting from defaults", zap.Error(err))
		s.seed()
	case !found:
		s.seed()
	default:
		s.adopt(st)
	}
	return s
}

// adopt replaces all in-memory state with the restored snapshot.
func (s *Store) adopt(st models.State) {
	s.users.items = st.Users
	s.services.items = st.Services
	s.infra.items = st.Infrastructure
	s.amenities.items = st.Amenities
	s.reports.items = st.Reports
	s.feedback.items = st.Feedback
	s.identity = st.Identity
}

// Snapshot returns a copy of the complete portal state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.State {
	var id *models.Identity
	if s.identity != nil {
		cp := *s.identity
		id = &cp
	}
	return models.State{
		Users:          s.users.list(),
		Services:       s.services.list(),
		Infrastructure: s.infra.list(),
		Amenities:      s.amenities.list(),
		Reports:        s.reports.list(),
		Feedback:       s.feedback.list(),
		Identity:       id,
	}
}

// persistLocked saves the full state after a mutation. Must be called
// with the mutex held. The returned error never implies a rollback.
func (s *Store) persistLocked(op string) error {
	if s.gateway == nil {
		return nil
	}
	if err := s.gateway.Save(context.Background(), s.snapshotLocked()); err != nil {
		s.log.Error("state save failed, in-memory state remains authoritative",
			zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// Services returns all city services in insertion order.
func (s *Store) Services() []models.CityService {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services.list()
}

// AddService stores a new city service and returns it with its
// assigned id.
func (s *Store) AddService(svc models.CityService) (models.CityService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = s.newID()
	s.services.add(svc)
	return svc, s.persistLocked("add service")
}

// UpdateService merges the patch onto the stored service.
func (s *Store) UpdateService(id string, patch models.CityServicePatch) (models.CityService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services.update(id, func(c *models.CityService) { patch.Apply(c) })
	if !ok {
		return models.CityService{}, ErrNotFound
	}
	return svc, s.persistLocked("update service")
}

// DeleteService removes the service with the given id.
func (s *Store) DeleteService(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.services.remove(id) {
		return ErrNotFound
	}
	return s.persistLocked("delete service")
}

// Infrastructure returns all infrastructure items in insertion order.
func (s *Store) Infrastructure() []models.InfrastructureItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infra.list()
}

// AddInfrastructure stores a new infrastructure item and returns it
// with its assigned id.
func (s *Store) AddInfrastructure(item models.InfrastructureItem) (models.InfrastructureItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.newID()
	s.infra.add(item)
	return item, s.persistLocked("add infrastructure")
}

// UpdateInfrastructure merges the patch onto the stored item.
func (s *Store) UpdateInfrastructure(id string, patch models.InfrastructurePatch) (models.InfrastructureItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.infra.update(id, func(i *models.InfrastructureItem) { patch.Apply(i) })
	if !ok {
		return models.InfrastructureItem{}, ErrNotFound
	}
	return item, s.persistLocked("update infrastructure")
}

// DeleteInfrastructure removes the item with the given id.
func (s *Store) DeleteInfrastructure(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.infra.remove(id) {
		return ErrNotFound
	}
	return s.persistLocked("delete infrastructure")
}

// Amenities returns all amenities in insertion order.
func (s *Store) Amenities() []models.Amenity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amenities.list()
}

// AddAmenity stores a new amenity and returns it with its assigned id.
func (s *Store) AddAmenity(a models.Amenity) (models.Amenity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.newID()
	s.amenities.add(a)
	return a, s.persistLocked("add amenity")
}

// UpdateAmenity merges the patch onto the stored amenity.
func (s *Store) UpdateAmenity(id string, patch models.AmenityPatch) (models.Amenity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.amenities.update(id, func(am *models.Amenity) { patch.Apply(am) })
	if !ok {
		return models.Amenity{}, ErrNotFound
	}
	return a, s.persistLocked("update amenity")
}

// DeleteAmenity removes the amenity with the given id.
func (s *Store) DeleteAmenity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.amenities.remove(id) {
		return ErrNotFound
	}
	return s.persistLocked("delete amenity")
}

// Reports returns reports in insertion order. A non-empty userID
// restricts the result to that user's reports; the empty string
// returns everything (the admin view).
func (s *Store) Reports(userID string) []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" {
		return s.reports.list()
	}
	return s.reports.filter(func(r models.Report) bool { return r.UserID == userID })
}

// AddReport stores a new report. The id, pending status and creation
// time are assigned here and cannot be supplied by the caller.
func (s *Store) AddReport(r models.Report) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.newID()
	r.Status = models.ReportPending
	r.CreatedAt = s.now()
	s.reports.add(r)
	return r, s.persistLocked("add report")
}

// UpdateReport merges the patch onto the stored report. CreatedAt and
// the owning user are immutable.
func (s *Store) UpdateReport(id string, patch models.ReportPatch) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports.update(id, func(rep *models.Report) { patch.Apply(rep) })
	if !ok {
		return models.Report{}, ErrNotFound
	}
	return r, s.persistLocked("update report")
}

// DeleteReport removes the report with the given id.
func (s *Store) DeleteReport(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reports.remove(id) {
		return ErrNotFound
	}
	return s.persistLocked("delete report")
}

// Feedback returns feedback items in insertion order. A non-empty
// userID restricts the result to that user's items; the empty string
// returns everything (the admin view).
func (s *Store) Feedback(userID string) []models.FeedbackItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" {
		return s.feedback.list()
	}
	return s.feedback.filter(func(f models.FeedbackItem) bool { return f.UserID == userID })
}

// AddFeedback stores a new feedback item. The id, new status and
// creation time are assigned here. The rating is stored exactly as
// given: range validation is the caller's job, not the store's.
func (s *Store) AddFeedback(f models.FeedbackItem) (models.FeedbackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.newID()
	f.Status = models.FeedbackNew
	f.AdminResponse = ""
	f.CreatedAt = s.now()
	s.feedback.add(f)
	return f, s.persistLocked("add feedback")
}

// UpdateFeedback merges the patch onto the stored feedback item.
func (s *Store) UpdateFeedback(id string, patch models.FeedbackPatch) (models.FeedbackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feedback.update(id, func(fb *models.FeedbackItem) { patch.Apply(fb) })
	if !ok {
		return models.FeedbackItem{}, ErrNotFound
	}
	return f, s.persistLocked("update feedback")
}

// DeleteFeedback removes the feedback item with the given id.
func (s *Store) DeleteFeedback(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.feedback.remove(id) {
		return ErrNotFound
	}
	return s.persistLocked("delete feedback")
}
