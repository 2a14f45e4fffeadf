package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecofinds/ecofinds-backend/internal/auth"
	"github.com/ecofinds/ecofinds-backend/internal/users"
)

type AuthHandler struct {
	Users  *users.Repo
	Tokens auth.Tokens
	Auth   *Authenticator
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuth)
			r.Get("/me", h.me)
			r.Put("/me", h.updateProfile)
			r.Post("/change-password", h.changePassword)
			r.Post("/logout", h.logout)
		})
	})
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
}

// tokenPair issues both tokens for a fresh session.
func (h *AuthHandler) tokenPair(userID int64) (access, refresh string, err error) {
	access, err = h.Tokens.GenerateAccess(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err = h.Tokens.GenerateRefresh(userID)
	return access, refresh, err
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, err)
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Email, hash, req.FullName)
	if errors.Is(err, users.ErrDuplicate) {
		respondError(w, http.StatusConflict, "User with this email or username already exists")
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}

	access, refresh, err := h.tokenPair(u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":         u,
		"token":        access,
		"refreshToken": refresh,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	u, err := h.Users.ByEmail(ctx, req.Email)
	if errors.Is(err, users.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, req.Password)) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}

	access, refresh, err := h.tokenPair(u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Login successful", map[string]any{
		"user":         u,
		"token":        access,
		"refreshToken": refresh,
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())
	respondData(w, http.StatusOK, map[string]any{"user": u})
}

type updateProfileReq struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	Onboarded *bool   `json:"onboarded"`
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	updated, err := h.Users.UpdateProfile(ctx, u.ID, users.ProfileUpdate{
		Username:  req.Username,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
		Onboarded: req.Onboarded,
	})
	switch {
	case errors.Is(err, users.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "Username is already taken")
		return
	case errors.Is(err, users.ErrNoFields):
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	case err != nil:
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": updated})
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,password"`
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	u, _ := CurrentUser(r.Context())

	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respondInternal(w, err)
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is an acknowledgement for the client.
	respondMessage(w, http.StatusOK, "Logged out successfully", nil)
}
