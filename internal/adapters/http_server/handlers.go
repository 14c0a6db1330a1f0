// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

const maxBatch = 1000

type Handlers struct {
	Q *app.QueryService
	C *app.ClassificationService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimit(s.limiter))
		}
		r.Post("/v1/classify", h.classify)
		r.Post("/v1/classify/batch", h.classifyBatch)
	})
	s.mux.Get("/v1/reviews/{id}/sentiment", h.getReviewSentiment)
	s.mux.Get("/v1/products/{id}/sentiment", h.getProductSummary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 8<<20))
	dec.UseNumber()
	return dec.Decode(dst)
}

func (h *Handlers) classify(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeBody(w, r, &payload); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	rv, err := app.MapReview(payload)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid review", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.C.Classify(rv))
}

func (h *Handlers) classifyBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := decodeBody(w, r, &payload); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if len(payload.Items) > maxBatch {
		writeProblem(w, http.StatusRequestEntityTooLarge, "Batch too large", "at most "+strconv.Itoa(maxBatch)+" reviews per request")
		return
	}
	reviews := make([]domain.Review, 0, len(payload.Items))
	for i, p := range payload.Items {
		rv, err := app.MapReview(p)
		if err != nil {
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid review", "item "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		reviews = append(reviews, rv)
	}
	out, err := h.C.ClassifyAll(r.Context(), reviews)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Classification aborted", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":   out,
		"summary": app.Summarize(out),
	})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) getReviewSentiment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	cr, err := h.Q.GetReviewSentiment(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "review not classified")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("review_id", id).Msg("get review sentiment failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeCached(w, r, cr)
}

func (h *Handlers) getProductSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ps, err := h.Q.ProductSummary(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no classified reviews for product")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("product summary failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeCached(w, r, ps)
}
