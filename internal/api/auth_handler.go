package api

import (
	"net/http"

	"github.com/db-engineer-practice/backend/internal/domain/user"
	"github.com/db-engineer-practice/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  user.Info `json:"user"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// @Summary      Register
// @Description  Create an account. Usernames and emails are unique.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account to create"
// @Success      201   {object}  RegisterResponse
// @Failure      400   {object}  MessageResponse
// @Failure      409   {object}  MessageResponse  "username or email taken"
// @Router       /auth/register [post]
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, RegisterResponse{ID: id, Message: "registered"})
}

// @Summary      Login
// @Description  Verify credentials and issue a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  MessageResponse
// @Router       /auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, info, err := h.users.Login(r.Context(), req.Username, req.Password)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{Token: token, User: *info})
}

// @Summary      Logout
// @Description  Tokens are stateless; the client discards its copy.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// @Summary      Get profile
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  user.Info
// @Failure      401  {object}  MessageResponse
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	info, err := h.users.GetProfile(r.Context(), userID(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// @Summary      Update profile
// @Description  Partial update; omitted fields stay unchanged.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object}  user.Info
// @Failure      400   {object}  MessageResponse
// @Failure      409   {object}  MessageResponse
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	info, err := h.users.UpdateProfile(r.Context(), userID(r), service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, info)
}
