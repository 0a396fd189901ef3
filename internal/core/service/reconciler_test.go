package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/supplier-hub/internal/core/domain"
)

func TestRestore_AddsQuantities(t *testing.T) {
	products := newMockProductRepo()
	products.products[1] = domain.Product{ID: 1, Name: "Shirt-M", Quantity: 10}
	products.products[2] = domain.Product{ID: 2, Name: "Pants-L", Quantity: 4}

	r := NewStockReconciler(products)
	restored, failed := r.Restore(context.Background(), []domain.OrderDetail{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	})

	if restored != 2 || failed != 0 {
		t.Errorf("expected 2 restored / 0 failed, got %d / %d", restored, failed)
	}
	if got := products.quantity(1); got != 13 {
		t.Errorf("expected product 1 quantity 13, got %d", got)
	}
	if got := products.quantity(2); got != 6 {
		t.Errorf("expected product 2 quantity 6, got %d", got)
	}
}

func TestRestore_ContinuesAfterFailure(t *testing.T) {
	products := newMockProductRepo()
	products.products[1] = domain.Product{ID: 1, Quantity: 5}
	products.products[2] = domain.Product{ID: 2, Quantity: 5}
	products.products[3] = domain.Product{ID: 3, Quantity: 5}
	products.restoreErr[2] = errors.New("connection reset")

	r := NewStockReconciler(products)
	restored, failed := r.Restore(context.Background(), []domain.OrderDetail{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	})

	if restored != 2 || failed != 1 {
		t.Errorf("expected 2 restored / 1 failed, got %d / %d", restored, failed)
	}
	if got := products.quantity(1); got != 6 {
		t.Errorf("expected product 1 quantity 6, got %d", got)
	}
	if got := products.quantity(3); got != 6 {
		t.Errorf("expected product 3 quantity 6, got %d", got)
	}
}

func TestRestore_SkipsNonPositiveQuantities(t *testing.T) {
	products := newMockProductRepo()
	products.products[1] = domain.Product{ID: 1, Quantity: 5}

	r := NewStockReconciler(products)
	restored, failed := r.Restore(context.Background(), []domain.OrderDetail{
		{ProductID: 1, Quantity: 0},
		{ProductID: 1, Quantity: -2},
	})

	if restored != 0 || failed != 0 {
		t.Errorf("expected nothing processed, got %d / %d", restored, failed)
	}
	if got := products.quantity(1); got != 5 {
		t.Errorf("expected quantity unchanged at 5, got %d", got)
	}
}
