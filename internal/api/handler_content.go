package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-site/internal/domain"
)

// OrderedItem is one row of a committed order.
type OrderedItem struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

// reorderRequest carries exactly one of: a drag (from, to), a full id
// permutation (ids), or a single step (id, direction).
type reorderRequest struct {
	From      *int     `json:"from,omitempty"`
	To        *int     `json:"to,omitempty"`
	IDs       []string `json:"ids,omitempty"`
	ID        string   `json:"id,omitempty"`
	Direction string   `json:"direction,omitempty"`
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	collection := chi.URLParam(r, "collection")

	var items []domain.OrderedItem
	var err error
	switch {
	case req.IDs != nil:
		items, err = h.order.ApplyOrder(r.Context(), collection, req.IDs)
	case req.From != nil && req.To != nil:
		items, err = h.order.Reorder(r.Context(), collection, *req.From, *req.To)
	case req.ID != "":
		items, err = h.order.Move(r.Context(), collection, req.ID, domain.MoveDirection(req.Direction))
	default:
		err = domain.ErrValidation("one of {from,to}, {ids} or {id,direction} is required")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]OrderedItem, len(items))
	for i, it := range items {
		out[i] = OrderedItem{ID: it.ID, DisplayOrder: it.DisplayOrder}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// Upload is the response of POST /uploads.
type Upload struct {
	URL string `json:"url"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	// Allow multipart framing on top of the largest accepted file.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, domain.ErrValidation("file exceeds the upload limit"))
			return
		}
		writeError(w, domain.ErrValidation("multipart field \"file\" is required"))
		return
	}
	defer file.Close() //nolint:errcheck

	url, err := h.uploads.Upload(r.Context(), r.URL.Query().Get("prefix"), header.Filename,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Upload{URL: url})
}
