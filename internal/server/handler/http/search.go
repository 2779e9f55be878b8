package http

import (
	"net/http"
	"strings"

	"github.com/cityconnect/portal/internal/models"
)

// SearchService defines the free-text search operation required by
// the HTTP handler.
type SearchService interface {
	// SearchAll matches the query against the three browsable
	// collections. An empty query matches everything.
	SearchAll(query string) models.SearchResults
}

// SearchHandler handles free-text search requests. Blank queries are
// rejected here: the datastore contract is that an empty query
// substring-matches every record, which is never what a portal user
// asked for.
type SearchHandler struct {
	// Search performs the underlying datastore search.
	Search SearchService
}

// SearchAll handles GET /api/search?q=term.
func (h *SearchHandler) SearchAll(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "search query required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.Search.SearchAll(q))
}
