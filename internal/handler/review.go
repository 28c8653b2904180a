package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
)

type createReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReview handles POST /api/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var body createReviewRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if body.BookingID == uuid.Nil {
		requestError(w, "booking_id is required")
		return
	}

	created, err := s.reviews.Create(r.Context(), req, body.BookingID, body.Rating, body.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(created))
}

// GetReview handles GET /api/reviews/{id}. Public.
func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid review id")
		return
	}

	rv, err := s.reviews.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewToResponse(rv))
}

// ListReviews handles GET /api/reviews. Public.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]reviewResponse, len(reviews))
	for i, rv := range reviews {
		data[i] = reviewToResponse(rv)
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateReview handles PUT /api/reviews/{id}. Author or admin.
func (s *Server) UpdateReview(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid review id")
		return
	}

	var body updateReviewRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	updated, err := s.reviews.Update(r.Context(), req, id, body.Rating, body.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewToResponse(updated))
}

// DeleteReview handles DELETE /api/reviews/{id}. Author or admin.
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid review id")
		return
	}

	if err := s.reviews.Delete(r.Context(), req, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reviewToResponse(rv domain.Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID,
		BookingID: rv.BookingID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}
