package domain

import "time"

type Product struct {
	ID         int64     `json:"id"`
	SupplierID int64     `json:"supplier_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	Size       string    `json:"size"`
	Category   string    `json:"category"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PlaceholderProduct stands in for a product row that no longer exists,
// so an order view can still render every detail line.
func PlaceholderProduct(id int64) Product {
	return Product{
		ID:       id,
		Name:     "product not found",
		Category: "N/A",
	}
}
