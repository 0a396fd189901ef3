package service

import (
	"context"
	"log"

	"github.com/rl1809/supplier-hub/internal/core/domain"
	"github.com/rl1809/supplier-hub/internal/port"
)

// StockReconciler puts deducted inventory back when an order is cancelled.
// Each detail is restored with a single atomic increment on the backend, so
// concurrent cancellations touching the same product cannot lose an update.
type StockReconciler struct {
	products port.ProductRepository
}

func NewStockReconciler(products port.ProductRepository) *StockReconciler {
	return &StockReconciler{products: products}
}

// Restore adds each detail's quantity back to its product. A failed detail
// is logged and counted; the remaining details are still processed. Applied
// increments are never rolled back.
func (r *StockReconciler) Restore(ctx context.Context, details []domain.OrderDetail) (restored, failed int) {
	for _, d := range details {
		if d.Quantity <= 0 {
			continue
		}

		if err := r.products.RestoreQuantity(ctx, d.ProductID, d.Quantity); err != nil {
			log.Printf("reconciler: restore %d units of product %d: %v", d.Quantity, d.ProductID, err)
			failed++
			continue
		}
		restored++
	}

	return restored, failed
}
