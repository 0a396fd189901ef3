package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rl1809/supplier-hub/internal/core/domain"
)

// Mock OrderRepository
type mockOrderRepo struct {
	mu          sync.Mutex
	orders      map[int64]domain.Order
	details     map[int64][]domain.OrderDetail
	listErr     error
	getErr      error
	detailsErr  error
	updateErr   error
	updateCalls int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:  make(map[int64]domain.Order),
		details: make(map[int64][]domain.OrderDetail),
	}
}

func (m *mockOrderRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	var orders []domain.Order
	for _, o := range m.orders {
		if o.SupplierID == supplierID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].SequenceNum > orders[j].SequenceNum
	})
	return orders, nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *mockOrderRepo) ListDetailsByOrderIDs(ctx context.Context, orderIDs []int64) ([]domain.OrderDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.detailsErr != nil {
		return nil, m.detailsErr
	}

	var details []domain.OrderDetail
	for _, id := range orderIDs {
		details = append(details, m.details[id]...)
	}
	return details, nil
}

func (m *mockOrderRepo) UpdateStatusFromPending(ctx context.Context, orderID int64, status domain.OrderStatus, updatedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls++
	if m.updateErr != nil {
		return false, m.updateErr
	}

	o, ok := m.orders[orderID]
	if !ok || o.Status != domain.OrderStatusPending {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	m.orders[orderID] = o
	return true, nil
}

func (m *mockOrderRepo) status(orderID int64) domain.OrderStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[orderID].Status
}

// Mock ClientRepository
type mockClientRepo struct {
	mu      sync.Mutex
	clients map[int64]domain.Client
	getErr  error
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{clients: make(map[int64]domain.Client)}
}

func (m *mockClientRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	out := make(map[int64]domain.Client)
	for _, id := range ids {
		if c, ok := m.clients[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

// Mock ProductRepository
type mockProductRepo struct {
	mu         sync.Mutex
	products   map[int64]domain.Product
	restoreErr map[int64]error
	getErr     error
	listErr    error
	nextID     int64
	deleted    []int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products:   make(map[int64]domain.Product),
		restoreErr: make(map[int64]error),
		nextID:     1000,
	}
}

func (m *mockProductRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	var products []domain.Product
	for _, p := range m.products {
		if p.SupplierID == supplierID {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	out := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[p.ID]; !ok {
		return errors.New("product not found")
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.products, productID)
	m.deleted = append(m.deleted, productID)
	return nil
}

func (m *mockProductRepo) RestoreQuantity(ctx context.Context, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.restoreErr[productID]; err != nil {
		return err
	}

	p, ok := m.products[productID]
	if !ok {
		return errors.New("product not found")
	}
	p.Quantity += quantity
	m.products[productID] = p
	return nil
}

func (m *mockProductRepo) quantity(productID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[productID].Quantity
}

// Mock EventPublisher
type mockPublisher struct {
	mu     sync.Mutex
	events []domain.TransitionEvent
}

func (m *mockPublisher) PublishTransition(ctx context.Context, evt domain.TransitionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []domain.TransitionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TransitionEvent(nil), m.events...)
}
