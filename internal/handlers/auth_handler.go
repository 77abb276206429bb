package handlers

import (
	"encoding/json"
	"net/http"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/config"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"
)

type AuthHandler struct {
	cfg     *config.Config
	jwt     *auth.JWTManager
	Service *services.AuthService
}

func NewAuthHandler(cfg *config.Config, jwt *auth.JWTManager, s *services.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, jwt: jwt, Service: s}
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, user *models.User) {
	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		http.Error(w, "Could not create session", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, h.cfg, token)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.AuthResponse{Token: token, User: user})
}

// Initialized reports whether any system exists yet, so the frontend
// knows to show registration instead of login on first run.
func (h *AuthHandler) Initialized(w http.ResponseWriter, r *http.Request) {
	initialized, err := h.Service.Initialized(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"initialized": initialized})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.RegisterAdmin(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.issueSession(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.issueSession(w, user)
}

// QuickLogin re-authenticates with just the passcode. The user is
// identified from the previous session cookie, which may be expired but
// must still carry a valid signature.
func (h *AuthHandler) QuickLogin(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cfg.JWT.CookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "No previous session for quick login", http.StatusUnauthorized)
		return
	}
	claims, err := h.jwt.ParseExpired(cookie.Value)
	if err != nil {
		http.Error(w, "No previous session for quick login", http.StatusUnauthorized)
		return
	}

	var req models.QuickLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.QuickLogin(r.Context(), claims.UserID, req.Passcode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.issueSession(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cfg)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user. Runs behind the auth middleware, so
// reaching it at all means the session is valid.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.CurrentUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *AuthHandler) ChangePasscode(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ChangePasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ChangePasscode(r.Context(), userID, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Passcode updated"})
}

func (h *AuthHandler) ResetPasscode(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ResetPasscode(r.Context(), &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Passcode reset"})
}

func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	secret, url, err := h.Service.SetupTOTP(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SetupTOTPResponse{Secret: secret, URL: url})
}

func (h *AuthHandler) ConfirmTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ConfirmTOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ConfirmTOTP(r.Context(), userID, req.Secret, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Two-factor login enabled"})
}

func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.DisableTOTP(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
