package services

import (
	"context"
	"fmt"

	"github.com/skillbox-qa/intershop/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByNumber(ctx context.Context, number int64) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, number int64, status models.OrderStatus) error
}

// OrderService handles order business logic
type OrderService interface {
	CreateOrder(ctx context.Context, customerID string, cart models.Cart, billing models.Billing, method models.PaymentMethod) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, number int64) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, number int64, status models.OrderStatus) error
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// CreateOrder builds an order from the cart, moves it to the payment
// method's initial status and persists it. The repository assigns the number.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, customerID string, cart models.Cart, billing models.Billing, method models.PaymentMethod) (*models.Order, error) {
	order, err := models.NewOrder(customerID, cart, billing, method)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if method.InitialStatus != "" && method.InitialStatus != models.OrderStatusPending {
		if err := order.Transition(method.InitialStatus); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrderByNumber retrieves an order by its number
func (s *OrderServiceImpl) GetOrderByNumber(ctx context.Context, number int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListCustomerOrders returns the orders of a customer, newest first
func (s *OrderServiceImpl) ListCustomerOrders(ctx context.Context, customerID string) ([]*models.Order, error) {
	if customerID == "" {
		return nil, nil
	}
	orders, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to status through the domain state machine
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, number int64, status models.OrderStatus) error {
	order, err := s.orderRepo.GetOrderByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	if err := order.Transition(status); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, number, order.Status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}
