// Package handler implements the HTTP handlers for the van hire API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, van.go, booking.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
)

// UserServicer defines the account operations the user handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type UserServicer interface {
	Register(ctx context.Context, u domain.User, password string) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (string, domain.User, error)
	GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.User, error)
	ListAll(ctx context.Context, requester domain.Requester) ([]domain.User, error)
	Update(ctx context.Context, requester domain.Requester, u domain.User) (domain.User, error)
	ChangePassword(ctx context.Context, requester domain.Requester, oldPassword, newPassword string) error
	Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

// VanServicer defines the fleet operations the van handlers depend on.
type VanServicer interface {
	Create(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error)
	List(ctx context.Context) ([]domain.Van, error)
	Update(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error)
	Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

// BookingServicer defines the booking lifecycle operations the booking
// handlers depend on.
type BookingServicer interface {
	Create(ctx context.Context, requester domain.Requester, userID, vanID uuid.UUID, dates domain.DateRange) (domain.Booking, error)
	Update(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, newDates domain.DateRange) (domain.Booking, error)
	Cancel(ctx context.Context, requester domain.Requester, bookingID uuid.UUID) error
	GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.Booking, error)
	ListForUser(ctx context.Context, requester domain.Requester) ([]domain.Booking, error)
	ListAll(ctx context.Context, requester domain.Requester, p domain.PaginationParams) ([]domain.Booking, int64, error)
	RangesForVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error)
}

// ReviewServicer defines the review operations the review handlers depend on.
type ReviewServicer interface {
	Create(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, rating int, comment string) (domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, requester domain.Requester, id uuid.UUID, rating int, comment string) (domain.Review, error)
	Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

// Server holds the services behind the API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	users    UserServicer
	vans     VanServicer
	bookings BookingServicer
	reviews  ReviewServicer
	openapi  []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi is the raw spec document served at /openapi.yaml.
func NewServer(users UserServicer, vans VanServicer, bookings BookingServicer, reviews ReviewServicer, openapi []byte) *Server {
	return &Server{users: users, vans: vans, bookings: bookings, reviews: reviews, openapi: openapi}
}

// Routes builds the full route tree. authn is the bearer-token middleware;
// routes outside the authenticated group are public.
func (s *Server) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Post("/users", s.Register)
		r.Post("/users/sign-in", s.SignIn)
		r.Get("/vans", s.ListVans)
		r.Get("/vans/{id}", s.GetVan)
		r.Get("/vans/{id}/bookings", s.ListVanBookings)
		r.Get("/reviews", s.ListReviews)
		r.Get("/reviews/{id}", s.GetReview)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/users/me", s.GetMe)
			r.Put("/users/me", s.UpdateMe)
			r.Put("/users/me/password", s.ChangePassword)
			r.Delete("/users/me", s.DeleteMe)
			r.Get("/users", s.ListUsers)
			r.Put("/users/{id}", s.UpdateUser)
			r.Delete("/users/{id}", s.DeleteUser)

			r.Post("/vans", s.CreateVan)
			r.Put("/vans/{id}", s.UpdateVan)
			r.Delete("/vans/{id}", s.DeleteVan)

			r.Post("/bookings", s.CreateBooking)
			r.Get("/bookings", s.ListBookings)
			r.Get("/bookings/mine", s.ListMyBookings)
			r.Get("/bookings/{id}", s.GetBooking)
			r.Put("/bookings/{id}", s.UpdateBooking)
			r.Delete("/bookings/{id}", s.CancelBooking)

			r.Post("/reviews", s.CreateReview)
			r.Put("/reviews/{id}", s.UpdateReview)
			r.Delete("/reviews/{id}", s.DeleteReview)
		})
	})

	return r
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(s.openapi)
}
