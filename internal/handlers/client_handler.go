package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/services"

	"github.com/gorilla/mux"
)

// listCacheTTL bounds how stale a cached list page can get if an
// invalidation is ever missed.
const listCacheTTL = 5 * time.Minute

// pageFromQuery reads the ?page= parameter; the service layer fills in
// the per-resource page size.
func pageFromQuery(r *http.Request) pagination.Page {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return pagination.Page{Number: n}
}

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.Service.CreateClient(r.Context(), systemID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	client, err := h.Service.GetClient(r.Context(), systemID, id)
	if err != nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

// ListClients returns one page of clients, alphabetical, optionally
// narrowed by a name search.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	search := r.URL.Query().Get("search")
	page := pageFromQuery(r)

	cacheKey := fmt.Sprintf("clients:%d:%d:%s", systemID, page.Number, search)
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	result, err := h.Service.ListClients(r.Context(), systemID, search, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(r.Context(), cacheKey, data, listCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.Service.UpdateClient(r.Context(), systemID, id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteClient(r.Context(), systemID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
