package models

// SalesMetrics is one reporting window of sales figures. GrossSales is
// the sum of purchase amounts dated in the window, RevenueEarned the sum
// of payments received in it, and NetSales revenue minus refunds.
type SalesMetrics struct {
	Period        string  `json:"period"`
	GrossSales    float64 `json:"gross_sales"`
	RevenueEarned float64 `json:"revenue_earned"`
	NetSales      float64 `json:"net_sales"`
}

// TopProduct ranks a product either by how many distinct clients bought
// it or by units sold, depending on the query.
type TopProduct struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Clients     int    `json:"clients,omitempty"`
	Sales       int    `json:"sales,omitempty"`
}

// Activity is one row of the recent-activities feed shown on the
// dashboard: a purchase created, a payment received, or a shipment
// delivered.
type Activity struct {
	Kind       string  `json:"kind"`
	ClientName string  `json:"client_name"`
	Amount     float64 `json:"amount,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

type DashboardSummary struct {
	TotalClients     int     `json:"total_clients"`
	TotalProducts    int     `json:"total_products"`
	OpenPurchases    int     `json:"open_purchases"`
	OutstandingOwed  float64 `json:"outstanding_owed"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
}
