package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/vanhire/backend/internal/domain"
)

type registerRequest struct {
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	DateOfBirth *openapi_types.Date `json:"date_of_birth,omitempty"`
	Address     string              `json:"address,omitempty"`
	Licence     string              `json:"licence,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Email       string              `json:"email"`
	DateOfBirth *openapi_types.Date `json:"date_of_birth,omitempty"`
	Address     string              `json:"address,omitempty"`
	Licence     string              `json:"licence,omitempty"`
	Admin       bool                `json:"admin,omitempty"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// userResponse is the public view of an account. The password hash never
// appears here.
type userResponse struct {
	ID          uuid.UUID           `json:"id"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Email       string              `json:"email"`
	DateOfBirth *openapi_types.Date `json:"date_of_birth,omitempty"`
	Address     string              `json:"address,omitempty"`
	Licence     string              `json:"licence,omitempty"`
	Admin       bool                `json:"admin"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type signInResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register handles POST /api/users.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	u := domain.User{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Address:   body.Address,
		Licence:   body.Licence,
	}
	if body.DateOfBirth != nil {
		dob := body.DateOfBirth.Time
		u.DateOfBirth = &dob
	}

	created, err := s.users.Register(r.Context(), u, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToResponse(created))
}

// SignIn handles POST /api/users/sign-in.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var body signInRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	token, u, err := s.users.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, signInResponse{Token: token, User: userToResponse(u)})
}

// GetMe handles GET /api/users/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	u, err := s.users.GetByID(r.Context(), req, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// UpdateMe handles PUT /api/users/me.
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	s.updateUser(w, r, req, req.ID)
}

// UpdateUser handles PUT /api/users/{id}. Admin only (enforced by the
// service's access check: non-admins can only reach their own ID).
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid user id")
		return
	}
	s.updateUser(w, r, req, id)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, req domain.Requester, id uuid.UUID) {
	var body updateUserRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	u := domain.User{
		ID:        id,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Address:   body.Address,
		Licence:   body.Licence,
		Admin:     body.Admin,
	}
	if body.DateOfBirth != nil {
		dob := body.DateOfBirth.Time
		u.DateOfBirth = &dob
	}

	updated, err := s.users.Update(r.Context(), req, u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(updated))
}

// ChangePassword handles PUT /api/users/me/password.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var body changePasswordRequest
	if err := decodeJSON(r, &body); err != nil {
		requestError(w, "invalid request body")
		return
	}

	if err := s.users.ChangePassword(r.Context(), req, body.OldPassword, body.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMe handles DELETE /api/users/me. Cascades the account's bookings.
func (s *Server) DeleteMe(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), req, req.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/users/{id}. Admin only via the service's
// access check.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		requestError(w, "invalid user id")
		return
	}

	if err := s.users.Delete(r.Context(), req, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /api/users. Admin only.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	users, err := s.users.ListAll(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]userResponse, len(users))
	for i, u := range users {
		data[i] = userToResponse(u)
	}
	writeJSON(w, http.StatusOK, data)
}

// --- mapping helpers --------------------------------------------------------

func userToResponse(u domain.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
		Licence:   u.Licence,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		dob := openapi_types.Date{Time: *u.DateOfBirth}
		resp.DateOfBirth = &dob
	}
	return resp
}
