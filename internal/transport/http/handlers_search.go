package httptransport

import (
	"context"
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5"

	platformmw "truedial/internal/platform/middleware"
	"truedial/internal/platform/metrics"
	"truedial/internal/search"
)

type SearchService interface {
	Search(ctx context.Context, query, accountID string, page, pageSize int) (search.Page, error)
	Details(ctx context.Context, id, accountID string) (search.Details, error)
}

type SearchHandler struct {
	search  SearchService
	metrics *metrics.Metrics
}

func (h *SearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	accountID := platformmw.GetUserID(r.Context())

	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.search.Search(r.Context(), query, accountID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementSearches(queryKind(query))
	}
	respond(w, http.StatusOK, result)
}

func (h *SearchHandler) handleDetails(w http.ResponseWriter, r *http.Request) {
	accountID := platformmw.GetUserID(r.Context())

	details, err := h.search.Details(r.Context(), chi.URLParam(r, "id"), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, details)
}

func queryKind(query string) string {
	for _, c := range query {
		if unicode.IsSpace(c) {
			continue
		}
		if c >= '0' && c <= '9' || c == '+' {
			return "phone"
		}
		return "name"
	}
	return "empty"
}
