package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/handlers"
	"boutique-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	productHandler *handlers.ProductHandler,
	purchaseHandler *handlers.PurchaseHandler,
	paymentHandler *handlers.PaymentHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	processorHandler *handlers.ProcessorHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Session
	r.HandleFunc("/api/session/initialized", authHandler.Initialized).Methods("GET")
	r.HandleFunc("/api/session/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/session/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/session/quick-login", authHandler.QuickLogin).Methods("POST")
	r.HandleFunc("/api/session/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/session/reset-passcode", authHandler.ResetPasscode).Methods("POST")

	// Protected API routes - Session (current user)
	sessionAPI := r.PathPrefix("/api/session").Subrouter()
	sessionAPI.Use(authMiddleware.Authenticate)
	sessionAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	sessionAPI.HandleFunc("/passcode", authHandler.ChangePasscode).Methods("PUT")
	sessionAPI.HandleFunc("/totp/setup", authHandler.SetupTOTP).Methods("POST")
	sessionAPI.HandleFunc("/totp/confirm", authHandler.ConfirmTOTP).Methods("POST")
	sessionAPI.HandleFunc("/totp", authHandler.DisableTOTP).Methods("DELETE")

	// Protected API routes - Users (team management, admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapManageUsers)(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapManageUsers)(http.HandlerFunc(userHandler.AddUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapManageUsers)(http.HandlerFunc(userHandler.RemoveUser)).ServeHTTP).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/resend-temp-password", authMiddleware.RequireCapability(auth.CapManageUsers)(http.HandlerFunc(userHandler.ResendTempPassword)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/me", userHandler.UpdateProfile).Methods("PUT")
	usersAPI.HandleFunc("/me", userHandler.DeleteOwnAccount).Methods("DELETE")

	// Protected API routes - System (owner only, enforced in the service)
	systemAPI := r.PathPrefix("/api/system").Subrouter()
	systemAPI.Use(authMiddleware.Authenticate)
	systemAPI.HandleFunc("", userHandler.DeleteSystem).Methods("DELETE")

	// Protected API routes - Clients
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(clientHandler.CreateClient)).ServeHTTP).Methods("POST")
	clientsAPI.HandleFunc("/{id}", clientHandler.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(clientHandler.UpdateClient)).ServeHTTP).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(clientHandler.DeleteClient)).ServeHTTP).Methods("DELETE")
	clientsAPI.HandleFunc("/{id}/purchases", purchaseHandler.ListByClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}/purchases/total", purchaseHandler.TotalByClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}/payments", paymentHandler.ListByClient).Methods("GET")

	// Protected API routes - Products (catalog is shared across systems)
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapManageCatalog)(http.HandlerFunc(productHandler.CreateProduct)).ServeHTTP).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapManageCatalog)(http.HandlerFunc(productHandler.UpdateProduct)).ServeHTTP).Methods("PUT")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapManageCatalog)(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")
	productsAPI.HandleFunc("/{id}/clients", productHandler.ClientsForProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}/purchases", purchaseHandler.ListByProduct).Methods("GET")

	// Protected API routes - Purchases
	purchasesAPI := r.PathPrefix("/api/purchases").Subrouter()
	purchasesAPI.Use(authMiddleware.Authenticate)
	purchasesAPI.HandleFunc("", purchaseHandler.ListPurchases).Methods("GET")
	purchasesAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.CreateOrder)).ServeHTTP).Methods("POST")
	purchasesAPI.HandleFunc("/overdue", purchaseHandler.ListOverdue).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.GetPurchase).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.UpdatePurchase)).ServeHTTP).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.DeletePurchase)).ServeHTTP).Methods("DELETE")
	purchasesAPI.HandleFunc("/{id}/payment-status", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.UpdatePaymentStatus)).ServeHTTP).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}/shipping-status", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.UpdateShippingStatus)).ServeHTTP).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}/payment-link", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(purchaseHandler.GeneratePaymentLink)).ServeHTTP).Methods("POST")
	purchasesAPI.HandleFunc("/{id}/payments", paymentHandler.ListByPurchase).Methods("GET")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(paymentHandler.RecordPayment)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", authMiddleware.RequireCapability(auth.CapRecordSales)(http.HandlerFunc(paymentHandler.DeletePayment)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Analytics (view_analytics capability)
	analyticsAPI := r.PathPrefix("/api/analytics").Subrouter()
	analyticsAPI.Use(authMiddleware.Authenticate)
	analyticsAPI.Use(authMiddleware.RequireCapability(auth.CapViewAnalytics))
	analyticsAPI.HandleFunc("/weekly", analyticsHandler.WeeklyMetrics).Methods("GET")
	analyticsAPI.HandleFunc("/monthly", analyticsHandler.MonthlyMetrics).Methods("GET")
	analyticsAPI.HandleFunc("/month", analyticsHandler.MonthMetrics).Methods("GET")
	analyticsAPI.HandleFunc("/yearly", analyticsHandler.YearlyMetrics).Methods("GET")
	analyticsAPI.HandleFunc("/monthly-series", analyticsHandler.MonthlySeries).Methods("GET")
	analyticsAPI.HandleFunc("/top-products", analyticsHandler.TopProducts).Methods("GET")
	analyticsAPI.HandleFunc("/activities", analyticsHandler.RecentActivities).Methods("GET")
	analyticsAPI.HandleFunc("/summary", analyticsHandler.DashboardSummary).Methods("GET")
	analyticsAPI.HandleFunc("/report", analyticsHandler.YearlyReport).Methods("GET")

	// Protected API routes - Processor credentials (admin only)
	processorAPI := r.PathPrefix("/api/processor-credentials").Subrouter()
	processorAPI.Use(authMiddleware.Authenticate)
	processorAPI.Use(authMiddleware.RequireCapability(auth.CapManageCredentials))
	processorAPI.HandleFunc("", processorHandler.SaveCredentials).Methods("PUT")
	processorAPI.HandleFunc("/status", processorHandler.Status).Methods("GET")
	processorAPI.HandleFunc("", processorHandler.DeleteCredentials).Methods("DELETE")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
