package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/models"
)

// ErrEmptyCart is returned when checking out or couponing an empty cart
var ErrEmptyCart = errors.New("cart is empty")

// PlaceOrderRequest carries everything the checkout form submits
type PlaceOrderRequest struct {
	CustomerID    string
	Cart          models.Cart
	Billing       models.Billing
	PaymentMethod string
}

// CheckoutService handles cart pricing and order placement
type CheckoutService interface {
	ApplyCoupon(cart *models.Cart, code string) error
	RemoveCoupon(cart *models.Cart, code string) error
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error)
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	catalog      *models.Catalog
	coupons      map[string]models.Coupon
	orderService OrderService
	logger       *logrus.Entry
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(catalog *models.Catalog, coupons map[string]models.Coupon, orderService OrderService, logger *logrus.Logger) CheckoutService {
	return &CheckoutServiceImpl{
		catalog:      catalog,
		coupons:      coupons,
		orderService: orderService,
		logger:       logger.WithField("component", "checkout"),
	}
}

// ApplyCoupon validates code and attaches it to the cart
func (s *CheckoutServiceImpl) ApplyCoupon(cart *models.Cart, code string) error {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return models.ErrEmptyCouponCode
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}

	coupon, ok := s.coupons[code]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownCoupon, code)
	}
	if err := cart.ApplyCoupon(coupon); err != nil {
		return err
	}

	s.logger.WithField("coupon", code).Info("coupon applied")
	return nil
}

// RemoveCoupon detaches code from the cart
func (s *CheckoutServiceImpl) RemoveCoupon(cart *models.Cart, code string) error {
	if err := cart.RemoveCoupon(code); err != nil {
		return err
	}
	s.logger.WithField("coupon", models.NormalizeCouponCode(code)).Info("coupon removed")
	return nil
}

// PlaceOrder validates the request and creates the order. Billing problems
// come back as models.ValidationErrors.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if req.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := req.Billing.Validate(); err != nil {
		return nil, err
	}

	method, err := models.FindPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Cart.Items {
		p, err := s.catalog.ProductByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item.Name, err)
		}
		if item.Quantity > p.Stock {
			return nil, fmt.Errorf("%s: %w", p.Name, models.ErrInsufficientStock)
		}
	}

	order, err := s.orderService.CreateOrder(ctx, req.CustomerID, req.Cart, req.Billing, method)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order":   order.Number,
		"method":  order.PaymentMethod,
		"status":  order.Status,
		"total":   order.Total,
		"coupons": order.Coupons,
	}).Info("order placed")

	return order, nil
}
