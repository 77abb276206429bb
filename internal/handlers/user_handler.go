package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/config"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	cfg     *config.Config
	Service *services.UserService
}

func NewUserHandler(cfg *config.Config, s *services.UserService) *UserHandler {
	return &UserHandler{cfg: cfg, Service: s}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	users, err := h.Service.ListUsers(r.Context(), systemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// AddUser creates a team member. The response includes the generated
// temporary password once; it is never retrievable again.
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	var req models.AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.AddUser(r.Context(), systemID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	requesterID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.RemoveUser(r.Context(), systemID, id, requesterID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ResendTempPassword(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	resp, err := h.Service.ResendTempPassword(r.Context(), systemID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// DeleteOwnAccount removes the signed-in user and ends the session.
func (h *UserHandler) DeleteOwnAccount(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.DeleteOwnAccount(r.Context(), systemID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	auth.ClearSessionCookie(w, h.cfg)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSystem wipes the whole tenant. Owner only; the session is ended
// since the owner's account goes with it.
func (h *UserHandler) DeleteSystem(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.DeleteSystem(r.Context(), systemID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	auth.ClearSessionCookie(w, h.cfg)
	w.WriteHeader(http.StatusNoContent)
}
