package rest

import (
	"net/http"
)

func (h *Handler) searchRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	results, err := h.search.Search(r.Context(), q.Get("q"), parseSearchTarget(q.Get("type")))
	if err != nil {
		h.writeError(w, r, "search", err)
		return
	}
	Success(w, "", results)
}

func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statistics.Statistics(r.Context())
	if err != nil {
		h.writeError(w, r, "statistics", err)
		return
	}
	Success(w, "", stats)
}
