package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skillbox-qa/intershop/internal/models"
)

// MemoryOrderRepository keeps orders in process memory
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]*models.Order
	last   int64
}

// NewMemoryOrderRepository creates an empty in-memory order repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[int64]*models.Order),
		last:   firstOrderNumber,
	}
}

// CreateOrder stores a copy of order, assigning the next order number
func (r *MemoryOrderRepository) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last++
	now := time.Now().UTC()
	order.Number = r.last
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.Number] = cloneOrder(order)
	return nil
}

// GetOrderByNumber returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByNumber(_ context.Context, number int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, number)
	}
	return cloneOrder(order), nil
}

// ListOrdersByCustomer returns the orders of a customer, newest first
func (r *MemoryOrderRepository) ListOrdersByCustomer(_ context.Context, customerID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

// UpdateOrderStatus updates the status of an order
func (r *MemoryOrderRepository) UpdateOrderStatus(_ context.Context, number int64, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[number]
	if !ok {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, number)
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	c.Coupons = append([]string(nil), o.Coupons...)
	return &c
}

// MemoryCustomerRepository is a fixed set of storefront accounts
type MemoryCustomerRepository struct {
	byUsername map[string]*models.Customer
}

// NewMemoryCustomerRepository indexes customers by username, case-insensitively
func NewMemoryCustomerRepository(customers ...*models.Customer) *MemoryCustomerRepository {
	r := &MemoryCustomerRepository{byUsername: make(map[string]*models.Customer, len(customers))}
	for _, c := range customers {
		r.byUsername[strings.ToLower(c.Username)] = c
	}
	return r
}

// GetCustomerByUsername finds a customer by username or email
func (r *MemoryCustomerRepository) GetCustomerByUsername(_ context.Context, username string) (*models.Customer, error) {
	key := strings.ToLower(strings.TrimSpace(username))
	if c, ok := r.byUsername[key]; ok {
		return c, nil
	}
	for _, c := range r.byUsername {
		if strings.EqualFold(c.Email, key) {
			return c, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}

// GetCustomerByID finds a customer by id
func (r *MemoryCustomerRepository) GetCustomerByID(_ context.Context, id string) (*models.Customer, error) {
	for _, c := range r.byUsername {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}
