package models

import "errors"

// Cart errors
var (
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough units in stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// CartItem is a product line in a cart
type CartItem struct {
	ProductID int
	Slug      string
	Name      string
	Price     int64
	Quantity  int
}

// Total returns the line total
func (i CartItem) Total() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is the content of a shopping session
type Cart struct {
	Items   []CartItem
	Coupons []Coupon
}

// DiscountLine is one applied coupon with the amount it took off
type DiscountLine struct {
	Code   string
	Amount int64
}

// Totals is a priced cart
type Totals struct {
	Subtotal  int64
	Discounts []DiscountLine
	Discount  int64
	Total     int64
}

// Add puts qty units of p into the cart, merging with an existing line
func (c *Cart) Add(p Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if !p.InStock() {
		return ErrOutOfStock
	}

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			if qty > p.Stock-c.Items[i].Quantity {
				return ErrInsufficientStock
			}
			c.Items[i].Quantity += qty
			return nil
		}
	}

	if qty > p.Stock {
		return ErrInsufficientStock
	}
	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.CurrentPrice(),
		Quantity:  qty,
	})
	return nil
}

// Remove drops the line for productID and reports whether it existed
func (c *Cart) Remove(productID int) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			if len(c.Items) == 0 {
				c.Coupons = nil
			}
			return true
		}
	}
	return false
}

// ApplyCoupon attaches a coupon once
func (c *Cart) ApplyCoupon(coupon Coupon) error {
	if c.HasCoupon(coupon.Code) {
		return ErrCouponAlreadyApplied
	}
	c.Coupons = append(c.Coupons, coupon)
	return nil
}

// RemoveCoupon detaches a coupon by code
func (c *Cart) RemoveCoupon(code string) error {
	code = NormalizeCouponCode(code)
	for i, coupon := range c.Coupons {
		if coupon.Code == code {
			c.Coupons = append(c.Coupons[:i], c.Coupons[i+1:]...)
			return nil
		}
	}
	return ErrCouponNotApplied
}

// HasCoupon reports whether code is applied
func (c *Cart) HasCoupon(code string) bool {
	code = NormalizeCouponCode(code)
	for _, coupon := range c.Coupons {
		if coupon.Code == code {
			return true
		}
	}
	return false
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals prices the cart. Coupons apply in order, each to what is left.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, item := range c.Items {
		t.Subtotal += item.Total()
	}

	remaining := t.Subtotal
	for _, coupon := range c.Coupons {
		d := coupon.Discount(remaining)
		remaining -= d
		t.Discount += d
		t.Discounts = append(t.Discounts, DiscountLine{Code: coupon.Code, Amount: d})
	}
	t.Total = remaining
	return t
}

// Clone returns a deep copy
func (c Cart) Clone() Cart {
	return Cart{
		Items:   append([]CartItem(nil), c.Items...),
		Coupons: append([]Coupon(nil), c.Coupons...),
	}
}
