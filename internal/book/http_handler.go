package book

import (
	"errors"
	"net/http"
	"strconv"

	"bookscrape/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func pagination(r *http.Request) (page, pageSize int) {
	query := r.URL.Query()
	page, _ = strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func pagesMeta(page, pageSize, total int) map[string]any {
	return map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	}
}

// List handles GET /api/v1/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	params := Query{
		Category: r.URL.Query().Get("category"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, pagesMeta(page, pageSize, total))
}

// Search handles GET /api/v1/books/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	params := Query{
		Title:    r.URL.Query().Get("title"),
		Category: r.URL.Query().Get("category"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, pagesMeta(page, pageSize, total))
}

// GetByID handles GET /api/v1/books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "book id must be an integer", nil)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Categories handles GET /api/v1/categories
func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	names, total, err := h.service.Categories(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	type category struct {
		Name string `json:"name"`
	}
	out := make([]category, 0, len(names))
	for _, n := range names {
		out = append(out, category{Name: n})
	}

	httpx.JSONSuccess(w, r, out, pagesMeta(page, pageSize, total))
}
