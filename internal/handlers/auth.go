package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kunalgoyal9/gembot-backend/internal/auth"
	"github.com/kunalgoyal9/gembot-backend/internal/middleware"
	"github.com/kunalgoyal9/gembot-backend/internal/models"
	"github.com/kunalgoyal9/gembot-backend/internal/response"
	"github.com/kunalgoyal9/gembot-backend/internal/store"
	"github.com/kunalgoyal9/gembot-backend/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Users     store.UserStore
	JWTSecret string
	TokenTTL  time.Duration
}

// Register creates a new user. The response carries the created record but
// never the password hash (models.User strips it on marshaling).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(w, "all fields are required")
		return
	}

	if _, err := h.Users.GetUserByEmail(r.Context(), req.Email); err == nil {
		response.BadRequest(w, "user already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("register: email lookup failed: %v", err)
		response.InternalError(w)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("register: hashing failed: %v", err)
		response.InternalError(w)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			response.BadRequest(w, "user already exists")
			return
		}
		log.Printf("register: insert failed: %v", err)
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "new user created",
		"data":    user,
	})
}

// Login verifies credentials and issues a signed session token. The same
// "invalid credentials" message covers unknown email and wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "all fields are required")
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Unauthorized(w, "invalid credentials")
			return
		}
		log.Printf("login: email lookup failed: %v", err)
		response.InternalError(w)
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		response.Unauthorized(w, "invalid credentials")
		return
	}

	token, err := auth.NewAccessToken(user.ID.String(), h.JWTSecret, h.TokenTTL)
	if err != nil {
		log.Printf("login: token signing failed: %v", err)
		response.InternalError(w)
		return
	}

	// Cookie lifetime follows the signed claim expiry so the two never disagree.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "user logged in",
		"token":   token,
		"user":    user,
	})
}

// Logout expires the session cookie. The token itself stays valid until its
// expiry; there is no server-side revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "user logged out",
	})
}

// GetUser returns the user resolved by the token verification middleware.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		response.Unauthorized(w, "user not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}
