package models

import "time"

// Payment statuses a purchase can carry. Pending, Partial and Paid are
// derived from recorded payments; Overdue is assigned only by the
// background overdue checker.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
	PaymentStatusOverdue = "Overdue"
)

const (
	ShippingStatusPending   = "Pending"
	ShippingStatusShipped   = "Shipped"
	ShippingStatusDelivered = "Delivered"
)

type Purchase struct {
	ID             int            `json:"id"`
	SystemID       int            `json:"system_id"`
	ClientID       int            `json:"client_id"`
	ProductID      *int           `json:"product_id,omitempty"`
	Size           string         `json:"size,omitempty"`
	Amount         float64        `json:"amount"`
	PurchaseDate   time.Time      `json:"purchase_date"`
	PaymentStatus  string         `json:"payment_status"`
	ShippingStatus string         `json:"shipping_status"`
	PaymentLinkID  string         `json:"payment_link_id,omitempty"`
	PaymentLinkURL string         `json:"payment_link_url,omitempty"`
	Items          []PurchaseItem `json:"items,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PurchaseItem is one product line within a multi-item purchase.
type PurchaseItem struct {
	ID           int       `json:"id"`
	PurchaseID   int       `json:"purchase_id"`
	ProductID    int       `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	Size         string    `json:"size"`
	Quantity     int       `json:"quantity"`
	PricePerItem float64   `json:"price_per_item"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type OrderItemRequest struct {
	ProductID    int     `json:"product_id"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
}

// CreateOrderRequest creates a purchase as one user-facing action. A
// single-item order sets ProductID/Size directly; a multi-item order
// lists its line items instead. Payment, when present, records an
// immediate first payment against the new purchase.
type CreateOrderRequest struct {
	ClientID     int                   `json:"client_id"`
	ProductID    int                   `json:"product_id,omitempty"`
	Size         string                `json:"size,omitempty"`
	Amount       float64               `json:"amount"`
	PurchaseDate string                `json:"purchase_date"`
	Items        []OrderItemRequest    `json:"items,omitempty"`
	Payment      *CreatePaymentRequest `json:"payment,omitempty"`
}

// CreateOrderResponse reports the created purchase and, when an
// immediate payment was requested but failed, the error that left the
// purchase in its default Pending state.
type CreateOrderResponse struct {
	Purchase     *Purchase `json:"purchase"`
	PaymentError string    `json:"payment_error,omitempty"`
}

type UpdatePurchaseRequest struct {
	ClientID     int     `json:"client_id"`
	ProductID    int     `json:"product_id"`
	Size         string  `json:"size"`
	Amount       float64 `json:"amount"`
	PurchaseDate string  `json:"purchase_date"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type UpdateShippingStatusRequest struct {
	ShippingStatus string `json:"shipping_status"`
}

// PaymentLinkResponse carries the hosted payment page for a purchase.
type PaymentLinkResponse struct {
	PurchaseID int     `json:"purchase_id"`
	LinkID     string  `json:"link_id"`
	ShortURL   string  `json:"short_url"`
	Amount     float64 `json:"amount"`
}
