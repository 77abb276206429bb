package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(s *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// RecordPayment posts a payment against a purchase. The response
// carries the purchase's recomputed status and remaining balance.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.RecordPayment(r.Context(), systemID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	payment, err := h.Service.GetPayment(r.Context(), systemID, id)
	if err != nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

// ListPayments pages through all payments, optionally filtered by
// method.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	method := r.URL.Query().Get("method")
	page := pageFromQuery(r)

	cacheKey := fmt.Sprintf("payments:%d:%d:%s", systemID, page.Number, method)
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	result, err := h.Service.ListPayments(r.Context(), systemID, method, page)
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

func (h *PaymentHandler) ListByPurchase(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	purchaseID, _ := strconv.Atoi(mux.Vars(r)["id"])

	result, err := h.Service.ListByPurchase(r.Context(), systemID, purchaseID, pageFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PaymentHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	clientID, _ := strconv.Atoi(mux.Vars(r)["id"])

	result, err := h.Service.ListByClient(r.Context(), systemID, clientID, pageFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// DeletePayment removes a payment and recomputes the purchase status.
// A payment that is already gone counts as deleted.
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePayment(r.Context(), systemID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
