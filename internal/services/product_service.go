package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/storage"
)

type ProductService struct {
	Repo     *repositories.ProductRepository
	Uploader *storage.Uploader
}

func NewProductService(repo *repositories.ProductRepository, uploader *storage.Uploader) *ProductService {
	return &ProductService{Repo: repo, Uploader: uploader}
}

func validateProduct(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("product name is required")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// UploadImage stores a product photo and returns its URL. The same
// photo always maps to the same URL, and a URL already attached to a
// product is rejected so two products never share one image by mistake.
func (s *ProductService) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image file is empty")
	}
	if s.Uploader == nil {
		return "", errors.New("image storage not configured")
	}

	url, err := s.Uploader.Upload(ctx, filename, contentType, data)
	if err != nil {
		return "", err
	}

	inUse, err := s.Repo.ImageInUse(ctx, url)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", errors.New("this photo is already used by another product")
	}

	return url, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Price); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	if err := s.Repo.Create(ctx, product); err != nil {
		return nil, err
	}

	cache.InvalidateProductCaches(ctx)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

// ListProducts pages the catalog. Price bounds below zero are treated
// as unset.
func (s *ProductService) ListProducts(ctx context.Context, search string, minPrice, maxPrice float64, page pagination.Page) (*pagination.Result[*models.Product], error) {
	page = page.Normalize(pagination.ProductsPerPage)

	products, total, err := s.Repo.List(ctx, search, minPrice, maxPrice, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(products, page, total)
	return &result, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Name, req.Price); err != nil {
		return nil, err
	}

	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	product := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if product.ImageURL == "" {
		product.ImageURL = existing.ImageURL
	}

	if err := s.Repo.Update(ctx, product); err != nil {
		return nil, err
	}

	// Replaced image: drop the old object
	if s.Uploader != nil && existing.ImageURL != "" && existing.ImageURL != product.ImageURL {
		_ = s.Uploader.Delete(ctx, existing.ImageURL)
	}

	cache.InvalidateProductCaches(ctx)
	return s.Repo.Get(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		// Idempotent: deleting a missing product succeeds
		return nil
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.Uploader != nil && existing.ImageURL != "" {
		_ = s.Uploader.Delete(ctx, existing.ImageURL)
	}

	cache.InvalidateProductCaches(ctx)
	return nil
}

// ClientsForProduct lists buyers of a product for its detail page.
func (s *ProductService) ClientsForProduct(ctx context.Context, systemID, productID int, page pagination.Page) (*pagination.Result[*models.ProductClient], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	clients, total, err := s.Repo.ClientsForProduct(ctx, systemID, productID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(clients, page, total)
	return &result, nil
}
