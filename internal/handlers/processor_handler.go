package handlers

import (
	"encoding/json"
	"net/http"

	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"
)

type ProcessorHandler struct {
	Service *services.ProcessorService
}

func NewProcessorHandler(s *services.ProcessorService) *ProcessorHandler {
	return &ProcessorHandler{Service: s}
}

// SaveCredentials stores the payment processor keys for this system,
// the secret encrypted at rest.
func (h *ProcessorHandler) SaveCredentials(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	var req models.SaveProcessorCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	creds, err := h.Service.SaveCredentials(r.Context(), systemID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(creds)
}

// Status reports whether credentials are stored without exposing them.
func (h *ProcessorHandler) Status(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"configured": h.Service.HasCredentials(r.Context(), systemID),
	})
}

func (h *ProcessorHandler) DeleteCredentials(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	if err := h.Service.DeleteCredentials(r.Context(), systemID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
