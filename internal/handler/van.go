package handler

import (
	"net/http"

	"github.com/vanhire/backend/internal/domain"
)

type vanRequest struct {
	Name        string  `json:"name"`
	PricePerDay float64 `json:"price_per_day"`
}

// CreateVan handles POST /api/vans. Admin only.
func (s *Server) CreateVan(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var body vanRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.vans.Create(r.Context(), req, domain.Van{
		Name:        body.Name,
		PricePerDay: body.PricePerDay,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetVan handles GET /api/vans/{id}. Public.
func (s *Server) GetVan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid van id")
		return
	}

	van, err := s.vans.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, van)
}

// ListVans handles GET /api/vans. Public.
func (s *Server) ListVans(w http.ResponseWriter, r *http.Request) {
	vans, err := s.vans.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vans)
}

// UpdateVan handles PUT /api/vans/{id}. Admin only.
func (s *Server) UpdateVan(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid van id")
		return
	}

	var body vanRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	updated, err := s.vans.Update(r.Context(), req, domain.Van{
		ID:          id,
		Name:        body.Name,
		PricePerDay: body.PricePerDay,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteVan handles DELETE /api/vans/{id}. Admin only; cascades to the van's
// bookings and availability entries.
func (s *Server) DeleteVan(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid van id")
		return
	}

	if err := s.vans.Delete(r.Context(), req, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
