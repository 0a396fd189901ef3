package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/supplier-hub/internal/core/domain"
)

var ErrProductMissing = errors.New("product row not found")

// OrderStore reads the orders and order_details tables and performs the
// single write the engine is allowed: the guarded terminal status update.
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier_id, client_id, sequence_num, tracking_code,
		       status, total, notes, created_at, updated_at
		FROM orders
		WHERE supplier_id = ?
		ORDER BY sequence_num DESC`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (s *OrderStore) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, client_id, sequence_num, tracking_code,
		       status, total, notes, created_at, updated_at
		FROM orders WHERE id = ?`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var notes sql.NullString
	err := row.Scan(&o.ID, &o.SupplierID, &o.ClientID, &o.SequenceNum, &o.TrackingCode,
		&o.Status, &o.Total, &notes, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return o, err
	}
	if err != nil {
		return o, fmt.Errorf("scan order: %w", err)
	}
	o.Notes = notes.String
	return o, nil
}

func (s *OrderStore) ListDetailsByOrderIDs(ctx context.Context, orderIDs []int64) ([]domain.OrderDetail, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, quantity, unit_price, size, subtotal
		FROM order_details
		WHERE order_id IN (%s)
		ORDER BY order_id, id`, placeholders(len(orderIDs)))

	rows, err := s.db.QueryContext(ctx, query, idArgs(orderIDs)...)
	if err != nil {
		return nil, fmt.Errorf("query order details: %w", err)
	}
	defer rows.Close()

	var details []domain.OrderDetail
	for rows.Next() {
		var d domain.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Size, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

func (s *OrderStore) UpdateStatusFromPending(ctx context.Context, orderID int64, status domain.OrderStatus, updatedAt time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		status, updatedAt, orderID, domain.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ClientStore is read-only; clients are owned by the checkout flow.
type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Client, error) {
	if len(ids) == 0 {
		return map[int64]domain.Client{}, nil
	}

	query := fmt.Sprintf(`SELECT id, name, phone FROM clients WHERE id IN (%s)`, placeholders(len(ids)))
	rows, err := s.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make(map[int64]domain.Client, len(ids))
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients[c.ID] = c
	}

	return clients, rows.Err()
}

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier_id, name, quantity, price, size, category, image_url, created_at, updated_at
		FROM products
		WHERE supplier_id = ?
		ORDER BY id`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *ProductStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	if len(ids) == 0 {
		return map[int64]domain.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT id, supplier_id, name, quantity, price, size, category, image_url, created_at, updated_at
		FROM products WHERE id IN (%s)`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Name, &p.Quantity, &p.Price,
			&p.Size, &p.Category, &imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ImageURL = imageURL.String
		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products (supplier_id, name, quantity, price, size, category, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		p.SupplierID, p.Name, p.Quantity, p.Price, p.Size, p.Category, nullString(p.ImageURL),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("product insert id: %w", err)
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, p domain.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, quantity = ?, price = ?, size = ?, category = ?, image_url = ?, updated_at = NOW()
		WHERE id = ?`,
		p.Name, p.Quantity, p.Price, p.Size, p.Category, nullString(p.ImageURL), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrProductMissing
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, productID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// RestoreQuantity pushes the whole restoration to the backend as one
// conditional increment, so concurrent cancellations touching the same
// product cannot lose an update.
func (s *ProductStore) RestoreQuantity(ctx context.Context, productID int64, quantity int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity + ?, updated_at = NOW()
		WHERE id = ?`,
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("restore quantity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrProductMissing
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
