package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is valid from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

type Order struct {
	ID           int64       `json:"id"`
	SupplierID   int64       `json:"supplier_id"`
	ClientID     int64       `json:"client_id"`
	SequenceNum  int64       `json:"sequence_num"` // supplier-scoped order number
	TrackingCode string      `json:"tracking_code"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderDetail struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Size      string  `json:"size"`
	Subtotal  float64 `json:"subtotal"`
}

// LineTotal returns the stored subtotal, falling back to quantity times
// unit price when the column was left at zero.
func (d OrderDetail) LineTotal() float64 {
	if d.Subtotal != 0 {
		return d.Subtotal
	}
	return float64(d.Quantity) * d.UnitPrice
}

// DetailView is an OrderDetail with its product reference resolved.
type DetailView struct {
	OrderDetail
	Product Product `json:"product"`
}

// OrderView is the denormalized read model assembled by the aggregator.
// It is rebuilt on every load and never persisted.
type OrderView struct {
	Order
	Client     Client       `json:"client"`
	Details    []DetailView `json:"details"`
	TotalItems int          `json:"total_items"`
}
