package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/vanhire/backend/internal/domain"
)

// dateRangeDTO is the wire form of a booking's date span. Dates are
// date-only (YYYY-MM-DD), inclusive of both ends.
type dateRangeDTO struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

type createBookingRequest struct {
	// UserID may only be set by admins booking on a customer's behalf.
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	VanID     uuid.UUID          `json:"van_id"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

type updateBookingRequest struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

type bookingResponse struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"user_id"`
	VanID      uuid.UUID          `json:"van_id"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
	TotalPrice float64            `json:"total_price"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type bookingListResponse struct {
	Data       []bookingResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateBooking handles POST /api/bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var body createBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if body.VanID == uuid.Nil {
		requestError(w, "van_id is required")
		return
	}
	dates, err := domain.NewDateRange(body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		writeError(w, r, err)
		return
	}

	userID := uuid.Nil
	if body.UserID != nil {
		userID = *body.UserID
	}

	created, err := s.bookings.Create(r.Context(), req, userID, body.VanID, dates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(created))
}

// GetBooking handles GET /api/bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid booking id")
		return
	}

	b, err := s.bookings.GetByID(r.Context(), req, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// ListMyBookings handles GET /api/bookings/mine.
func (s *Server) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	bookings, err := s.bookings.ListForUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingsToResponse(bookings))
}

// ListBookings handles GET /api/bookings. Admin only.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	bookings, total, err := s.bookings.ListAll(r.Context(), req, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bookingListResponse{
		Data: bookingsToResponse(bookings),
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// UpdateBooking handles PUT /api/bookings/{id}.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid booking id")
		return
	}

	var body updateBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}
	dates, err := domain.NewDateRange(body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.bookings.Update(r.Context(), req, id, dates)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(updated))
}

// CancelBooking handles DELETE /api/bookings/{id}.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid booking id")
		return
	}

	if err := s.bookings.Cancel(r.Context(), req, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVanBookings handles GET /api/vans/{id}/bookings.
// Public: it returns committed date ranges only, never booker identities.
func (s *Server) ListVanBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid van id")
		return
	}

	ranges, err := s.bookings.RangesForVan(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]dateRangeDTO, len(ranges))
	for i, rng := range ranges {
		data[i] = rangeToResponse(rng)
	}
	writeJSON(w, http.StatusOK, data)
}

// --- mapping helpers --------------------------------------------------------

func rangeToResponse(r domain.DateRange) dateRangeDTO {
	return dateRangeDTO{
		StartDate: openapi_types.Date{Time: r.Start},
		EndDate:   openapi_types.Date{Time: r.End},
	}
}

func bookingToResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		VanID:      b.VanID,
		StartDate:  openapi_types.Date{Time: b.Dates.Start},
		EndDate:    openapi_types.Date{Time: b.Dates.End},
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func bookingsToResponse(bookings []domain.Booking) []bookingResponse {
	data := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		data[i] = bookingToResponse(b)
	}
	return data
}
