package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Label returns the status as shown in the account area
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "В ожидании оплаты"
	case OrderStatusOnHold:
		return "На удержании"
	case OrderStatusProcessing:
		return "Обработка"
	case OrderStatusCompleted:
		return "Выполнен"
	case OrderStatusFailed:
		return "Не удался"
	case OrderStatusCancelled:
		return "Отменён"
	default:
		return string(s)
	}
}

// PaymentMethod is a checkout payment option
type PaymentMethod struct {
	ID          string
	Title       string
	Description string
	// InitialStatus is where a fresh order lands once placed
	InitialStatus OrderStatus
}

// PaymentMethods returns the enabled payment methods in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{
			ID:            "bacs",
			Title:         "Прямой банковский перевод",
			Description:   "Оплатите заказ банковским переводом. В назначении платежа укажите номер заказа.",
			InitialStatus: OrderStatusOnHold,
		},
		{
			ID:            "cod",
			Title:         "Оплата при доставке",
			Description:   "Оплата наличными при доставке заказа.",
			InitialStatus: OrderStatusProcessing,
		},
	}
}

// FindPaymentMethod looks a payment method up by id
func FindPaymentMethod(id string) (PaymentMethod, error) {
	for _, m := range PaymentMethods() {
		if m.ID == id {
			return m, nil
		}
	}
	return PaymentMethod{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, id)
}

// OrderItem is a purchased product line
type OrderItem struct {
	ProductID int
	Slug      string
	Name      string
	Quantity  int
	Price     int64
}

// Total returns the line total
func (i OrderItem) Total() int64 {
	return i.Price * int64(i.Quantity)
}

// Order represents a customer order with business logic
type Order struct {
	ID            string
	Number        int64
	OrderKey      string
	CustomerID    string
	Status        OrderStatus
	PaymentMethod string
	PaymentTitle  string
	Billing       Billing
	Items         []OrderItem
	Coupons       []string
	Subtotal      int64
	Discount      int64
	Total         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidTotal            = errors.New("order total cannot be negative")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order from a priced cart
func NewOrder(customerID string, cart Cart, billing Billing, method PaymentMethod) (*Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyOrder
	}
	if method.ID == "" {
		return nil, ErrInvalidPaymentMethod
	}

	totals := cart.Totals()
	if totals.Total < 0 {
		return nil, ErrInvalidTotal
	}

	items := make([]OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Slug:      it.Slug,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	coupons := make([]string, 0, len(cart.Coupons))
	for _, c := range cart.Coupons {
		coupons = append(coupons, c.Code)
	}

	now := time.Now()
	return &Order{
		ID:            uuid.New().String(),
		OrderKey:      "wc_order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:13],
		CustomerID:    customerID,
		Status:        OrderStatusPending,
		PaymentMethod: method.ID,
		PaymentTitle:  method.Title,
		Billing:       billing,
		Items:         items,
		Coupons:       coupons,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Hold moves a pending order on hold until payment arrives
func (o *Order) Hold() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot hold order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.setStatus(OrderStatusOnHold)
	return nil
}

// Process starts fulfilment of a pending or on-hold order
func (o *Order) Process() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusOnHold {
		return fmt.Errorf("%w: cannot process order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.setStatus(OrderStatusProcessing)
	return nil
}

// Complete marks a processing order as delivered
func (o *Order) Complete() error {
	if o.Status != OrderStatusProcessing {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.setStatus(OrderStatusCompleted)
	return nil
}

// Fail marks the order as failed
func (o *Order) Fail() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusOnHold {
		return fmt.Errorf("%w: cannot fail order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.setStatus(OrderStatusFailed)
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return fmt.Errorf("%w: cannot cancel order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.setStatus(OrderStatusCancelled)
	return nil
}

// Transition applies the state change that leads to target
func (o *Order) Transition(target OrderStatus) error {
	switch target {
	case OrderStatusOnHold:
		return o.Hold()
	case OrderStatusProcessing:
		return o.Process()
	case OrderStatusCompleted:
		return o.Complete()
	case OrderStatusFailed:
		return o.Fail()
	case OrderStatusCancelled:
		return o.Cancel()
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidStatusTransition, target)
	}
}

func (o *Order) setStatus(s OrderStatus) {
	o.Status = s
	o.UpdatedAt = time.Now()
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// CanBeModified returns true if the order can still be modified
func (o *Order) CanBeModified() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusOnHold
}

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// GetFormattedTotal returns the total formatted in rubles
func (o *Order) GetFormattedTotal() string {
	return FormatRub(o.Total)
}
