package models

import "time"

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest is decoded from multipart form fields; the image
// itself travels as the "image" file part and is uploaded to S3 before
// the row is written.
type CreateProductRequest struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
}

type UpdateProductRequest struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
}

// ProductClient is a client that bought a given product at least once.
type ProductClient struct {
	ClientID  int    `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Purchases int    `json:"purchases"`
}
