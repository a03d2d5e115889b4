package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/models"
)

// ErrOrderNotFound is returned when no order has the requested number
var ErrOrderNotFound = errors.New("order not found")

// firstOrderNumber is the number before the first order; numbering starts after it
const firstOrderNumber = 1000

// OrderRepository handles database operations for orders. Queries are
// written with ? placeholders and rebound for postgres.
type OrderRepository struct {
	db     *sql.DB
	driver string
}

// NewOrderRepository creates an order repository over db for the given store driver
func NewOrderRepository(db *sql.DB, driver string) *OrderRepository {
	return &OrderRepository{
		db:     db,
		driver: driver,
	}
}

const orderColumns = `id, number, order_key, customer_id, status, payment_method, payment_title,
	billing_first_name, billing_last_name, billing_address, billing_city, billing_state,
	billing_postcode, billing_phone, billing_email, coupons, subtotal, discount, total,
	created_at, updated_at`

// CreateOrder stores the order and its items, assigning the next order number
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if r.driver == config.StorePostgres {
		// serialises number allocation; sqlite already has a single writer
		if _, err := tx.ExecContext(ctx, `LOCK TABLE orders IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock orders: %w", err)
		}
	}

	var number int64
	err = tx.QueryRowContext(ctx, r.rebind(`SELECT COALESCE(MAX(number), ?) + 1 FROM orders`), firstOrderNumber).Scan(&number)
	if err != nil {
		return fmt.Errorf("failed to allocate order number: %w", err)
	}

	now := time.Now().UTC()
	b := order.Billing
	_, err = tx.ExecContext(ctx, r.rebind(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		order.ID, number, order.OrderKey, order.CustomerID, string(order.Status),
		order.PaymentMethod, order.PaymentTitle,
		b.FirstName, b.LastName, b.Address, b.City, b.State, b.Postcode, b.Phone, b.Email,
		strings.Join(order.Coupons, ","), order.Subtotal, order.Discount, order.Total,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, r.rebind(`
			INSERT INTO order_items (order_id, line, product_id, slug, name, quantity, price)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`), order.ID, i, item.ProductID, item.Slug, item.Name, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.Number = number
	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

// GetOrderByNumber retrieves an order with its items
func (r *OrderRepository) GetOrderByNumber(ctx context.Context, number int64) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT `+orderColumns+` FROM orders WHERE number = ?`), number)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.Items, err = r.items(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrdersByCustomer returns the orders of a customer, newest first
func (r *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`
		SELECT `+orderColumns+` FROM orders WHERE customer_id = ? ORDER BY number DESC
	`), customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	rows.Close()

	for _, order := range orders {
		if order.Items, err = r.items(ctx, order.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus updates the status of an order
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, number int64, status models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx, r.rebind(`
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE number = ?
	`), string(status), time.Now().UTC(), number)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, number)
	}

	return nil
}

func (r *OrderRepository) items(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`
		SELECT product_id, slug, name, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY line
	`), orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Slug, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	var (
		order   models.Order
		status  string
		coupons string
	)
	b := &order.Billing
	err := s.Scan(
		&order.ID, &order.Number, &order.OrderKey, &order.CustomerID, &status,
		&order.PaymentMethod, &order.PaymentTitle,
		&b.FirstName, &b.LastName, &b.Address, &b.City, &b.State, &b.Postcode, &b.Phone, &b.Email,
		&coupons, &order.Subtotal, &order.Discount, &order.Total,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatus(status)
	if coupons != "" {
		order.Coupons = strings.Split(coupons, ",")
	}
	return &order, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (r *OrderRepository) rebind(query string) string {
	if r.driver != config.StorePostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
