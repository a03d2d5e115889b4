package pages

import (
	"context"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Cart page locators
var (
	CartItems      = browser.CSS("tr.woocommerce-cart-form__cart-item")
	CartItemName   = browser.CSS("td.product-name a")
	CartItemRemove = browser.CSS("a.remove")
	CartEmpty      = browser.CSS("p.cart-empty")
	CheckoutButton = browser.CSS("a.checkout-button")
)

// CartPage is the shopping cart
type CartPage struct {
	*BasePage
}

// NewCartPage returns the cart page object; call Load to open it
func NewCartPage(base *BasePage) *CartPage {
	return &CartPage{BasePage: base.at("cart", "/cart/")}
}

// Items returns the cart rows
func (p *CartPage) Items(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, CartItems)
}

// ItemNames returns the product names of the cart rows
func (p *CartPage) ItemNames(ctx context.Context) ([]string, error) {
	rows, err := p.Items(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		link, err := p.ElementFrom(ctx, row, CartItemName)
		if err != nil {
			return nil, err
		}
		name, err := link.Text(ctx)
		if err != nil {
			return nil, err
		}
		names = append(names, strings.TrimSpace(name))
	}
	return names, nil
}

// IsEmpty reports whether the empty cart notice is shown
func (p *CartPage) IsEmpty(ctx context.Context) (bool, error) {
	return p.probe(ctx, CartEmpty, browser.Visible, p.probeTimeout())
}

// RemoveItem removes the i-th row
func (p *CartPage) RemoveItem(ctx context.Context, i int) error {
	rows, err := p.Items(ctx)
	if err != nil {
		return err
	}
	row, err := nth(rows, i, "cart item")
	if err != nil {
		return err
	}
	link, err := p.ElementFrom(ctx, row, CartItemRemove)
	if err != nil {
		return err
	}
	return p.ClickBy(ctx, link)
}

// ProceedToCheckout follows the checkout button
func (p *CartPage) ProceedToCheckout(ctx context.Context) (*CheckoutPage, error) {
	if err := p.Click(ctx, CheckoutButton); err != nil {
		return nil, err
	}
	return NewCheckoutPage(p.BasePage), nil
}
