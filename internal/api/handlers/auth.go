package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aplus/messaging/internal/api/dto"
	"github.com/aplus/messaging/internal/auth"
	"github.com/aplus/messaging/internal/database/models"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Email and password required.",
			Details: errors,
		})
		return
	}

	resp, err := h.authService.Signup(r.Context(), auth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch err {
		case auth.ErrUserExists:
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "User already exists."})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		OK:    true,
		User:  userToDTO(resp.User),
		Token: resp.Token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Email and password required.",
			Details: errors,
		})
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			// Unknown email and wrong password share this branch.
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid credentials."})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected server error."})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		OK:    true,
		User:  userToDTO(resp.User),
		Token: resp.Token,
	})
}

func userToDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
