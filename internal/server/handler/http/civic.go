package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cityconnect/portal/internal/middleware"
	"github.com/cityconnect/portal/internal/models"
	"github.com/cityconnect/portal/internal/store"
)

// CivicService defines the citizen-record operations required by the
// HTTP handlers: reports and feedback, owner-scoped listing included.
type CivicService interface {
	Reports(userID string) []models.Report
	AddReport(models.Report) (models.Report, error)
	UpdateReport(id string, patch models.ReportPatch) (models.Report, error)
	DeleteReport(id string) error

	Feedback(userID string) []models.FeedbackItem
	AddFeedback(models.FeedbackItem) (models.FeedbackItem, error)
	UpdateFeedback(id string, patch models.FeedbackPatch) (models.FeedbackItem, error)
	DeleteFeedback(id string) error
}

// CivicHandler handles HTTP requests for citizen reports and
// feedback. Listing is owner-scoped for regular users; admins see
// everything and may narrow with the user query parameter. Status
// changes and deletes are mounted behind the admin gate.
type CivicHandler struct {
	// Civic performs the underlying datastore operations.
	Civic CivicService
}

// ReportRequest represents the JSON payload for submitting a report.
type ReportRequest struct {
	Category    models.ReportCategory `json:"category"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	Priority    models.Priority       `json:"priority"`
}

// FeedbackRequest represents the JSON payload for submitting feedback.
type FeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// ownerScope resolves which user's records the request may list.
// Admins see all records, or one user's with ?user=; everyone else is
// pinned to their own.
func ownerScope(r *http.Request) string {
	id := middleware.IdentityFromContext(r.Context())
	if id == nil {
		return ""
	}
	if id.Role == models.RoleAdmin {
		return r.URL.Query().Get("user")
	}
	return id.ID
}

// ListReports returns reports in the caller's scope.
func (h *CivicHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Civic.Reports(ownerScope(r)))
}

// CreateReport stores a new report owned by the caller. Status and
// creation time are assigned by the datastore.
func (h *CivicHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id := middleware.IdentityFromContext(r.Context())
	stored, _ := h.Civic.AddReport(models.Report{
		UserID:      id.ID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Priority:    req.Priority,
	})
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateReport applies a partial update to a report.
func (h *CivicHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var patch models.ReportPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	rep, err := h.Civic.UpdateReport(chi.URLParam(r, "id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// DeleteReport removes a report.
func (h *CivicHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.Civic.DeleteReport(chi.URLParam(r, "id")); errors.Is(err, store.ErrNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFeedback returns feedback in the caller's scope.
func (h *CivicHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Civic.Feedback(ownerScope(r)))
}

// CreateFeedback stores a new feedback item owned by the caller. The
// 1..5 rating range is enforced here at the boundary; the datastore
// itself stores whatever rating it is given.
func (h *CivicHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subject == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	id := middleware.IdentityFromContext(r.Context())
	stored, _ := h.Civic.AddFeedback(models.FeedbackItem{
		UserID:  id.ID,
		Subject: req.Subject,
		Message: req.Message,
		Rating:  req.Rating,
	})
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateFeedback applies a partial update to a feedback item. A
// patched rating is held to the same 1..5 bound as on create.
func (h *CivicHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	var patch models.FeedbackPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}
	fb, err := h.Civic.UpdateFeedback(chi.URLParam(r, "id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "feedback not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

// DeleteFeedback removes a feedback item.
func (h *CivicHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.Civic.DeleteFeedback(chi.URLParam(r, "id")); errors.Is(err, store.ErrNotFound) {
		http.Error(w, "feedback not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
