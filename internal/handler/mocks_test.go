package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/handler"
	"github.com/vanhire/backend/internal/middleware"
)

// Function-field doubles for the servicer interfaces. Each test sets only the
// methods it expects to be called; an unexpected call panics on the nil field
// and fails the test loudly.

type mockUserService struct {
	register       func(ctx context.Context, u domain.User, password string) (domain.User, error)
	authenticate   func(ctx context.Context, email, password string) (string, domain.User, error)
	getByID        func(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.User, error)
	listAll        func(ctx context.Context, requester domain.Requester) ([]domain.User, error)
	update         func(ctx context.Context, requester domain.Requester, u domain.User) (domain.User, error)
	changePassword func(ctx context.Context, requester domain.Requester, oldPassword, newPassword string) error
	delete         func(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

var _ handler.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, u domain.User, password string) (domain.User, error) {
	return m.register(ctx, u, password)
}
func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (string, domain.User, error) {
	return m.authenticate(ctx, email, password)
}
func (m *mockUserService) GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, requester, id)
}
func (m *mockUserService) ListAll(ctx context.Context, requester domain.Requester) ([]domain.User, error) {
	return m.listAll(ctx, requester)
}
func (m *mockUserService) Update(ctx context.Context, requester domain.Requester, u domain.User) (domain.User, error) {
	return m.update(ctx, requester, u)
}
func (m *mockUserService) ChangePassword(ctx context.Context, requester domain.Requester, oldPassword, newPassword string) error {
	return m.changePassword(ctx, requester, oldPassword, newPassword)
}
func (m *mockUserService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	return m.delete(ctx, requester, id)
}

type mockVanService struct {
	create  func(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Van, error)
	list    func(ctx context.Context) ([]domain.Van, error)
	update  func(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error)
	delete  func(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

var _ handler.VanServicer = (*mockVanService)(nil)

func (m *mockVanService) Create(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error) {
	return m.create(ctx, requester, van)
}
func (m *mockVanService) GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	return m.getByID(ctx, id)
}
func (m *mockVanService) List(ctx context.Context) ([]domain.Van, error) {
	return m.list(ctx)
}
func (m *mockVanService) Update(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error) {
	return m.update(ctx, requester, van)
}
func (m *mockVanService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	return m.delete(ctx, requester, id)
}

type mockBookingService struct {
	create       func(ctx context.Context, requester domain.Requester, userID, vanID uuid.UUID, dates domain.DateRange) (domain.Booking, error)
	update       func(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, newDates domain.DateRange) (domain.Booking, error)
	cancel       func(ctx context.Context, requester domain.Requester, bookingID uuid.UUID) error
	getByID      func(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.Booking, error)
	listForUser  func(ctx context.Context, requester domain.Requester) ([]domain.Booking, error)
	listAll      func(ctx context.Context, requester domain.Requester, p domain.PaginationParams) ([]domain.Booking, int64, error)
	rangesForVan func(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error)
}

var _ handler.BookingServicer = (*mockBookingService)(nil)

func (m *mockBookingService) Create(ctx context.Context, requester domain.Requester, userID, vanID uuid.UUID, dates domain.DateRange) (domain.Booking, error) {
	return m.create(ctx, requester, userID, vanID, dates)
}
func (m *mockBookingService) Update(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, newDates domain.DateRange) (domain.Booking, error) {
	return m.update(ctx, requester, bookingID, newDates)
}
func (m *mockBookingService) Cancel(ctx context.Context, requester domain.Requester, bookingID uuid.UUID) error {
	return m.cancel(ctx, requester, bookingID)
}
func (m *mockBookingService) GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, requester, id)
}
func (m *mockBookingService) ListForUser(ctx context.Context, requester domain.Requester) ([]domain.Booking, error) {
	return m.listForUser(ctx, requester)
}
func (m *mockBookingService) ListAll(ctx context.Context, requester domain.Requester, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listAll(ctx, requester, p)
}
func (m *mockBookingService) RangesForVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error) {
	return m.rangesForVan(ctx, vanID)
}

type mockReviewService struct {
	create  func(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, rating int, comment string) (domain.Review, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Review, error)
	list    func(ctx context.Context) ([]domain.Review, error)
	update  func(ctx context.Context, requester domain.Requester, id uuid.UUID, rating int, comment string) (domain.Review, error)
	delete  func(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

var _ handler.ReviewServicer = (*mockReviewService)(nil)

func (m *mockReviewService) Create(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, rating int, comment string) (domain.Review, error) {
	return m.create(ctx, requester, bookingID, rating, comment)
}
func (m *mockReviewService) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return m.getByID(ctx, id)
}
func (m *mockReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return m.list(ctx)
}
func (m *mockReviewService) Update(ctx context.Context, requester domain.Requester, id uuid.UUID, rating int, comment string) (domain.Review, error) {
	return m.update(ctx, requester, id, rating, comment)
}
func (m *mockReviewService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	return m.delete(ctx, requester, id)
}

// serverFixture bundles the mocks behind a Server wired through the real
// route tree, with an authenticator stub that injects f.requester.
type serverFixture struct {
	users    *mockUserService
	vans     *mockVanService
	bookings *mockBookingService
	reviews  *mockReviewService

	requester domain.Requester
	router    http.Handler
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	f := &serverFixture{
		users:     &mockUserService{},
		vans:      &mockVanService{},
		bookings:  &mockBookingService{},
		reviews:   &mockReviewService{},
		requester: domain.Requester{ID: uuid.New()},
	}
	srv := handler.NewServer(f.users, f.vans, f.bookings, f.reviews, []byte("openapi: 3.0.3\n"))
	authn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.ContextWithRequester(r.Context(), f.requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	f.router = srv.Routes(authn)
	return f
}

// do runs a request through the route tree and returns the recorded response.
func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// day builds a midnight-UTC time from a calendar date string.
func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func rangeOf(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.NewDateRange(day(t, start), day(t, end))
	require.NoError(t, err)
	return r
}
