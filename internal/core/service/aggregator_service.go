package service

import (
	"context"
	"fmt"

	"github.com/rl1809/supplier-hub/internal/core/domain"
	"github.com/rl1809/supplier-hub/internal/port"
)

// AggregatorService assembles denormalized order views from four
// independently fetched tables. The backend does not join server-side, so
// related rows are fetched in batched id lookups and joined in memory.
type AggregatorService struct {
	orders   port.OrderRepository
	clients  port.ClientRepository
	products port.ProductRepository
}

func NewAggregatorService(orders port.OrderRepository, clients port.ClientRepository, products port.ProductRepository) *AggregatorService {
	return &AggregatorService{
		orders:   orders,
		clients:  clients,
		products: products,
	}
}

// LoadOrders returns the supplier's orders, newest sequence number first,
// with client and product references resolved. A missing client or product
// row yields a placeholder record instead of dropping the order. Any fetch
// failure aborts the whole load; partial joins are never returned.
func (s *AggregatorService) LoadOrders(ctx context.Context, supplierID int64) ([]domain.OrderView, error) {
	orders, err := s.orders.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	clientIDs := make([]int64, 0, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		clientIDs = append(clientIDs, o.ClientID)
		orderIDs = append(orderIDs, o.ID)
	}

	clients, err := s.clients.GetByIDs(ctx, dedupIDs(clientIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}

	details, err := s.orders.ListDetailsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch order details: %w", err)
	}

	products := map[int64]domain.Product{}
	if len(details) > 0 {
		productIDs := make([]int64, 0, len(details))
		for _, d := range details {
			productIDs = append(productIDs, d.ProductID)
		}
		products, err = s.products.GetByIDs(ctx, dedupIDs(productIDs))
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
	}

	detailsByOrder := make(map[int64][]domain.OrderDetail, len(orders))
	for _, d := range details {
		detailsByOrder[d.OrderID] = append(detailsByOrder[d.OrderID], d)
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		client, ok := clients[o.ClientID]
		if !ok {
			client = domain.PlaceholderClient(o.ClientID)
		}

		view := domain.OrderView{Order: o, Client: client}
		for _, d := range detailsByOrder[o.ID] {
			product, ok := products[d.ProductID]
			if !ok {
				product = domain.PlaceholderProduct(d.ProductID)
			}
			view.Details = append(view.Details, domain.DetailView{OrderDetail: d, Product: product})
			view.TotalItems += d.Quantity
		}

		views = append(views, view)
	}

	return views, nil
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
