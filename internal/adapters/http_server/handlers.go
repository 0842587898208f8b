package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/adapters/observability"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/app"
	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Reviews *app.ReviewService
	Contact *app.ContactService

	// throttle settings for the POST endpoints; zero values pick defaults
	SubmitRPS   float64
	SubmitBurst int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewList struct {
	Reviews []domain.Review `json:"reviews"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/api/health", health)
	s.mux.Get("/api/reviews", h.listReviews)
	s.mux.Get("/api/reviews/{locationName}", h.listLocationReviews)
	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(h.SubmitRPS, h.SubmitBurst))
		r.Post("/api/reviews", h.submitReview)
		r.Post("/api/contact", h.submitContact)
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
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

func writeListWithETag(w http.ResponseWriter, r *http.Request, rs []domain.Review) {
	if rs == nil {
		rs = []domain.Review{}
	}
	etag, body := calcETagAndBody(reviewList{Reviews: rs})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write review list body")
	}
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Reviews.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeListWithETag(w, r, rs)
}

func (h *Handlers) listLocationReviews(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "locationName")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	rs, err := h.Reviews.ListByLocation(r.Context(), name)
	if err != nil {
		log.Error().Err(err).Str("location", name).Msg("list location reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeListWithETag(w, r, rs)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var in domain.Review
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", "request body must be a JSON review")
		return
	}
	out, err := h.Reviews.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Invalid Review", err.Error())
			return
		}
		log.Error().Err(err).Msg("submit review failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not save review")
		return
	}
	observability.ReviewsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactMessage
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", "request body must be a JSON contact message")
		return
	}
	if err := h.Contact.Submit(r.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Invalid Message", err.Error())
			return
		}
		log.Error().Err(err).Msg("contact relay failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not send message")
		return
	}
	observability.ContactMessages.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "thanks for reaching out, we will get back to you soon"})
}
