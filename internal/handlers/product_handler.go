package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/middleware"
	"boutique-backend/internal/models"
	"boutique-backend/internal/services"

	"github.com/gorilla/mux"
)

// Product photos come in as multipart uploads; anything past this is a
// mistake, not a product shot.
const maxUploadSize = 16 << 20

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(s *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: s}
}

// productForm reads the multipart fields shared by create and update.
// The image file is optional; when present it is uploaded first and the
// resulting URL goes on the request.
func (h *ProductHandler) productForm(r *http.Request) (name, description string, price float64, imageURL string, err error) {
	if err = r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "", 0, "", errors.New("invalid multipart form")
	}

	name = r.FormValue("name")
	description = r.FormValue("description")

	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err = strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return "", "", 0, "", errors.New("price must be a number")
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return name, description, price, "", nil
		}
		return "", "", 0, "", errors.New("could not read image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", 0, "", errors.New("could not read image upload")
	}

	imageURL, err = h.Service.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return "", "", 0, "", err
	}
	return name, description, price, imageURL, nil
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	name, description, price, imageURL, err := h.productForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := &models.CreateProductRequest{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
	product, err := h.Service.CreateProduct(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	product, err := h.Service.GetProduct(r.Context(), id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// priceBound parses a price query parameter; -1 means not supplied.
func priceBound(r *http.Request, name string) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return -1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return -1
	}
	return v
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	minPrice := priceBound(r, "min_price")
	maxPrice := priceBound(r, "max_price")
	page := pageFromQuery(r)

	cacheKey := fmt.Sprintf("products:%d:%s:%g:%g", page.Number, search, minPrice, maxPrice)
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	result, err := h.Service.ListProducts(r.Context(), search, minPrice, maxPrice, page)
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

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	name, description, price, imageURL, err := h.productForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := &models.UpdateProductRequest{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
	product, err := h.Service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClientsForProduct pages through the buyers of one product.
func (h *ProductHandler) ClientsForProduct(w http.ResponseWriter, r *http.Request) {
	systemID, _ := middleware.GetSystemIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	result, err := h.Service.ClientsForProduct(r.Context(), systemID, id, pageFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
