package scrapejob

import (
	"net/http"
	"strconv"

	"bookscrape/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Trigger handles POST /api/v1/scraping/trigger. It only creates the job
// record; the crawl itself runs out-of-band.
func (h *HTTPHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Trigger(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "TRIGGER_FAILED", "could not create scraping job", nil)
		return
	}
	httpx.JSONSuccess(w, r, result, nil)
}

// Status handles GET /api/v1/scraping/status.
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	var jobID *int64
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "job_id must be an integer", nil)
			return
		}
		jobID = &id
	}

	status, err := h.svc.Status(r.Context(), jobID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, status, nil)
}
