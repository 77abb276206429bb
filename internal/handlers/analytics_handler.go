package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/services"
	"boutique-backend/internal/timeutil"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	Reports *services.ReportService
}

func NewAnalyticsHandler(s *services.AnalyticsService, reports *services.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s, Reports: reports}
}

// yearFromQuery reads ?year=, defaulting to the current business year.
func yearFromQuery(r *http.Request) int {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		return timeutil.Now().Year()
	}
	return year
}

// respondCached serves the computed value through the analytics cache.
// Any mutation to purchases, payments, clients or products clears the
// analytics keys, so a hit is always current.
func respondCached(w http.ResponseWriter, r *http.Request, key string, compute func() (interface{}, error)) {
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	value, err := compute()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(r.Context(), key, data, listCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *AnalyticsHandler) WeeklyMetrics(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	respondCached(w, r, fmt.Sprintf("analytics:weekly:%d", systemID), func() (interface{}, error) {
		return h.Service.WeeklyMetrics(r.Context(), systemID)
	})
}

func (h *AnalyticsHandler) MonthlyMetrics(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	respondCached(w, r, fmt.Sprintf("analytics:monthly:%d", systemID), func() (interface{}, error) {
		return h.Service.MonthlyMetrics(r.Context(), systemID)
	})
}

// MonthMetrics returns one named month, ?year= and ?month= required.
func (h *AnalyticsHandler) MonthMetrics(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	year := yearFromQuery(r)
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month parameter is required", http.StatusBadRequest)
		return
	}

	metrics, err := h.Service.MonthMetrics(r.Context(), systemID, year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

func (h *AnalyticsHandler) YearlyMetrics(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	year := yearFromQuery(r)
	respondCached(w, r, fmt.Sprintf("analytics:yearly:%d:%d", systemID, year), func() (interface{}, error) {
		return h.Service.YearlyMetrics(r.Context(), systemID, year)
	})
}

// MonthlySeries returns twelve months of metrics for charting a year.
func (h *AnalyticsHandler) MonthlySeries(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	year := yearFromQuery(r)
	respondCached(w, r, fmt.Sprintf("analytics:series:%d:%d", systemID, year), func() (interface{}, error) {
		return h.Service.MonthlySeries(r.Context(), systemID, year)
	})
}

// TopProducts ranks by distinct buyers by default, by units sold with
// ?by=sales.
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	bySales := r.URL.Query().Get("by") == "sales"
	respondCached(w, r, fmt.Sprintf("analytics:top:%d:%t", systemID, bySales), func() (interface{}, error) {
		return h.Service.TopProducts(r.Context(), systemID, bySales)
	})
}

func (h *AnalyticsHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())

	activities, err := h.Service.RecentActivities(r.Context(), systemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

func (h *AnalyticsHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	respondCached(w, r, fmt.Sprintf("analytics:summary:%d", systemID), func() (interface{}, error) {
		return h.Service.DashboardSummary(r.Context(), systemID)
	})
}

// YearlyReport streams the yearly sales report as a PDF download.
func (h *AnalyticsHandler) YearlyReport(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	year := yearFromQuery(r)

	pdf, err := h.Reports.YearlySalesReport(r.Context(), systemID, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=sales-report-%d.pdf", year))
	w.Write(pdf)
}
