package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides registration and login endpoints. There is no
// session or token state; every request stands on its own.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService) {
	handler := NewAuthHandler(userService)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.FullName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Register(r.Context(), types.User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailInUse) {
			writeJSON(w, http.StatusConflict, AuthResponse{
				Success: false,
				Message: "Email is already in use",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	view := user.View()
	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		User:    &view,
		Message: "Registration successful",
	})
}

// Login verifies credentials and returns the account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Invalid credentials",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	view := user.View()
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		User:    &view,
		Message: "Login successful",
	})
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the envelope for register/login results. User is the
// sanitized view; the stored password hash never leaves the service.
type AuthResponse struct {
	Success bool            `json:"success"`
	User    *types.UserView `json:"user,omitempty"`
	Message string          `json:"message"`
}
