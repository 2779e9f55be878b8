package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cityconnect/portal/internal/models"
	"github.com/cityconnect/portal/internal/store"
)

// CatalogService defines the browsable-catalog operations required by
// the HTTP handlers: CRUD over services, infrastructure and amenities.
type CatalogService interface {
	Services() []models.CityService
	AddService(models.CityService) (models.CityService, error)
	UpdateService(id string, patch models.CityServicePatch) (models.CityService, error)
	DeleteService(id string) error

	Infrastructure() []models.InfrastructureItem
	AddInfrastructure(models.InfrastructureItem) (models.InfrastructureItem, error)
	UpdateInfrastructure(id string, patch models.InfrastructurePatch) (models.InfrastructureItem, error)
	DeleteInfrastructure(id string) error

	Amenities() []models.Amenity
	AddAmenity(models.Amenity) (models.Amenity, error)
	UpdateAmenity(id string, patch models.AmenityPatch) (models.Amenity, error)
	DeleteAmenity(id string) error
}

// CatalogHandler handles HTTP requests for the three browsable
// catalogs. Mutating endpoints are mounted behind the admin gate.
type CatalogHandler struct {
	// Catalog performs the underlying datastore operations.
	Catalog CatalogService
}

// ListServices returns all city services.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Services())
}

// CreateService stores a new city service.
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.CityService
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil || svc.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	stored, _ := h.Catalog.AddService(svc)
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateService applies a partial update to a service.
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var patch models.CityServicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	svc, err := h.Catalog.UpdateService(chi.URLParam(r, "id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// DeleteService removes a service.
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteService(chi.URLParam(r, "id")); errors.Is(err, store.ErrNotFound) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListInfrastructure returns all infrastructure items.
func (h *CatalogHandler) ListInfrastructure(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Infrastructure())
}

// CreateInfrastructure stores a new infrastructure item.
func (h *CatalogHandler) CreateInfrastructure(w http.ResponseWriter, r *http.Request) {
	var item models.InfrastructureItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	stored, _ := h.Catalog.AddInfrastructure(item)
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateInfrastructure applies a partial update to an item.
func (h *CatalogHandler) UpdateInfrastructure(w http.ResponseWriter, r *http.Request) {
	var patch models.InfrastructurePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	item, err := h.Catalog.UpdateInfrastructure(chi.URLParam(r, "id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "infrastructure not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteInfrastructure removes an item.
func (h *CatalogHandler) DeleteInfrastructure(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteInfrastructure(chi.URLParam(r, "id")); errors.Is(err, store.ErrNotFound) {
		http.Error(w, "infrastructure not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListAmenities returns all amenities.
func (h *CatalogHandler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Amenities())
}

// CreateAmenity stores a new amenity.
func (h *CatalogHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var a models.Amenity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil || a.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	stored, _ := h.Catalog.AddAmenity(a)
	writeJSON(w, http.StatusCreated, stored)
}

// UpdateAmenity applies a partial update to an amenity.
func (h *CatalogHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	var patch models.AmenityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	a, err := h.Catalog.UpdateAmenity(chi.URLParam(r, "id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "amenity not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeleteAmenity removes an amenity.
func (h *CatalogHandler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteAmenity(chi.URLParam(r, "id")); errors.Is(err, store.ErrNotFound) {
		http.Error(w, "amenity not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
