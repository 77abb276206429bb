package models

import "time"

// ProcessorCredentials are the system owner's third-party payment
// processor keys. The secret is stored encrypted and never serialized.
type ProcessorCredentials struct {
	ID              int       `json:"id"`
	SystemID        int       `json:"system_id"`
	ClientKey       string    `json:"client_key"`
	EncryptedSecret string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SaveProcessorCredentialsRequest struct {
	ClientKey    string `json:"client_key"`
	ClientSecret string `json:"client_secret"`
}
