package port

import (
	"context"
	"time"

	"github.com/rl1809/supplier-hub/internal/core/domain"
)

type OrderRepository interface {
	// ListBySupplier returns the supplier's orders ordered by
	// sequence number descending.
	ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Order, error)

	// GetByID returns nil without error when the order does not exist.
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)

	// ListDetailsByOrderIDs fetches the details of all given orders in
	// one round trip.
	ListDetailsByOrderIDs(ctx context.Context, orderIDs []int64) ([]domain.OrderDetail, error)

	// UpdateStatusFromPending persists a terminal status and the update
	// timestamp, guarded by the row still being pending. Returns false
	// when no row matched the predicate.
	UpdateStatusFromPending(ctx context.Context, orderID int64, status domain.OrderStatus, updatedAt time.Time) (bool, error)
}

type ClientRepository interface {
	// GetByIDs fetches all given clients in one round trip. Missing ids
	// are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Client, error)
}

type ProductRepository interface {
	ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Product, error)

	// GetByIDs fetches all given products in one round trip. Missing ids
	// are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)

	// Create inserts the product and fills in its assigned id.
	Create(ctx context.Context, p *domain.Product) error

	Update(ctx context.Context, p domain.Product) error

	Delete(ctx context.Context, productID int64) error

	// RestoreQuantity adds quantity back to the product's on-hand stock
	// as a single atomic increment on the backend.
	RestoreQuantity(ctx context.Context, productID int64, quantity int) error
}
