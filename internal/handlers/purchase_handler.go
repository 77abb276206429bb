package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"

	"github.com/gorilla/mux"
)

type PurchaseHandler struct {
	Service  *services.PurchaseService
	PayLinks *services.PayLinkService
}

func NewPurchaseHandler(s *services.PurchaseService, payLinks *services.PayLinkService) *PurchaseHandler {
	return &PurchaseHandler{Service: s, PayLinks: payLinks}
}

// CreateOrder records a sale. A failed optional first payment does not
// fail the order; the response carries the purchase plus the payment
// error for the frontend to surface.
func (h *PurchaseHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), systemID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	purchase, err := h.Service.GetPurchase(r.Context(), systemID, id)
	if err != nil {
		http.Error(w, "Purchase not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchase)
}

func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	result, err := h.Service.ListPurchases(r.Context(), systemID, pageFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListByClient pages through one client's purchase history.
func (h *PurchaseHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
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

// ListByProduct pages through the purchases of one product.
func (h *PurchaseHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	productID, _ := strconv.Atoi(mux.Vars(r)["id"])

	result, err := h.Service.ListByProduct(r.Context(), systemID, productID, pageFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *PurchaseHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	purchases, err := h.Service.ListOverdue(r.Context(), systemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchases)
}

// TotalByClient returns a client's lifetime purchase total.
func (h *PurchaseHandler) TotalByClient(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	clientID, _ := strconv.Atoi(mux.Vars(r)["id"])

	total, err := h.Service.TotalByClient(r.Context(), systemID, clientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"client_id":    clientID,
		"total_amount": total,
	})
}

func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	purchase, err := h.Service.UpdatePurchase(r.Context(), systemID, id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchase)
}

func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePurchase(r.Context(), systemID, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePaymentStatus is the manual override, including the only way
// out of Overdue.
func (h *PurchaseHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetPaymentStatus(r.Context(), systemID, id, req.PaymentStatus); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"payment_status": req.PaymentStatus})
}

func (h *PurchaseHandler) UpdateShippingStatus(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateShippingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetShippingStatus(r.Context(), systemID, id, req.ShippingStatus); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"shipping_status": req.ShippingStatus})
}

// GeneratePaymentLink creates a hosted payment link for the purchase's
// amount through the stored processor credentials.
func (h *PurchaseHandler) GeneratePaymentLink(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	link, err := h.PayLinks.GenerateLink(r.Context(), systemID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(link)
}
