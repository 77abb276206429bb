package models

import "time"

type Client struct {
	ID                     int       `json:"id"`
	SystemID               int       `json:"system_id"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	ContactMethod          string    `json:"contact_method"`
	ContactDetails         string    `json:"contact_details"`
	PreferredPaymentMethod string    `json:"preferred_payment_method"`
	AdditionalNotes        string    `json:"additional_notes"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Contact methods accepted for a client.
const (
	ContactMethodPhone = "phone"
	ContactMethodEmail = "email"
)

type CreateClientRequest struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	ContactMethod          string `json:"contact_method"`
	ContactDetails         string `json:"contact_details"`
	PreferredPaymentMethod string `json:"preferred_payment_method"`
	AdditionalNotes        string `json:"additional_notes"`
}

type UpdateClientRequest struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	ContactMethod          string `json:"contact_method"`
	ContactDetails         string `json:"contact_details"`
	PreferredPaymentMethod string `json:"preferred_payment_method"`
	AdditionalNotes        string `json:"additional_notes"`
}
