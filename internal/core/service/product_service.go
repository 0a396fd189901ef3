package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/supplier-hub/internal/core/domain"
	"github.com/rl1809/supplier-hub/internal/port"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductService covers the supplier's catalog maintenance. Image bytes
// never pass through here; only the stored URL column is carried.
type ProductService struct {
	products port.ProductRepository
}

func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns the supplier's products. Rows whose image column holds a
// JSON blob from an older upload flow are corrected to the bare URL.
func (s *ProductService) List(ctx context.Context, supplierID int64) ([]domain.Product, error) {
	products, err := s.products.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	for i := range products {
		products[i].ImageURL = normalizeImageURL(products[i].ImageURL)
	}

	return products, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(*p); err != nil {
		return err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) error {
	if p.ID == 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, productID int64) error {
	if err := s.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func validateProduct(p domain.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case strings.TrimSpace(p.Size) == "":
		return fmt.Errorf("%w: size is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	return nil
}

// normalizeImageURL unwraps image references that were stored as the raw
// upload response, e.g. {"publicURL":"https://..."}. Anything that does
// not parse is returned unchanged.
func normalizeImageURL(raw string) string {
	if !strings.HasPrefix(raw, "{") {
		return raw
	}

	var wrapped struct {
		PublicURL   string `json:"publicURL"`
		PublicURLLC string `json:"publicUrl"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return raw
	}

	if wrapped.PublicURL != "" {
		return wrapped.PublicURL
	}
	return wrapped.PublicURLLC
}
