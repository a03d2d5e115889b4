package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Billing fields of the checkout form
var (
	NameField     = browser.ID("billing_first_name")
	LastNameField = browser.ID("billing_last_name")
	AddressField  = browser.ID("billing_address_1")
	CityField     = browser.ID("billing_city")
	StateField    = browser.ID("billing_state")
	PostcodeField = browser.ID("billing_postcode")
	PhoneField    = browser.ID("billing_phone")
	EmailField    = browser.ID("billing_email")
)

// Checkout page locators
var (
	ErrorAlert        = browser.XPath("(//ul[@class='woocommerce-error']/li)[1]")
	ErrorAlerts       = browser.XPath("//ul[@class='woocommerce-error']/li")
	ShowCouponLink    = browser.CSS("a.showcoupon")
	CouponField       = browser.ID("coupon_code")
	ApplyCouponButton = browser.Name("apply_coupon")
	AppliedCoupon     = browser.CSS("tr.cart-discount")
	RemoveCouponLink  = browser.CSS("a.woocommerce-remove-coupon")
	SuccessMessage    = browser.XPath("//div[@class='woocommerce-message']")
	PaymentVariants   = browser.CSS("ul.wc_payment_methods li.wc_payment_method")
	PaymentLabel      = browser.TagName("label")
	PlaceOrderButton  = browser.ID("place_order")
	LoadBlock         = browser.CSS("div.blockUI.blockOverlay")
)

const couponRemovedMessage = "Купон удален."

// CheckoutPage is the order form
type CheckoutPage struct {
	*BasePage
}

// NewCheckoutPage returns the checkout page object; call Load to open it
func NewCheckoutPage(base *BasePage) *CheckoutPage {
	return &CheckoutPage{BasePage: base.at("checkout", "/checkout/")}
}

// IsCouponAlreadyApplied reports whether the totals list a coupon discount
func (p *CheckoutPage) IsCouponAlreadyApplied(ctx context.Context) (bool, error) {
	return p.probe(ctx, AppliedCoupon, browser.Present, p.probeTimeout())
}

// RemoveAppliedCoupon follows the remove link of the first applied coupon
func (p *CheckoutPage) RemoveAppliedCoupon(ctx context.Context) error {
	return p.Click(ctx, RemoveCouponLink)
}

// ApplyCoupon opens the coupon form and submits code
func (p *CheckoutPage) ApplyCoupon(ctx context.Context, code string) error {
	if err := p.Click(ctx, ShowCouponLink); err != nil {
		return err
	}
	if err := p.Type(ctx, CouponField, code); err != nil {
		return err
	}
	return p.Click(ctx, ApplyCouponButton)
}

// SuccessMessageByApplyCoupon returns the confirmation notice
func (p *CheckoutPage) SuccessMessageByApplyCoupon(ctx context.Context) (string, error) {
	return p.TextOf(ctx, SuccessMessage)
}

// IsCouponRemoved reports whether the removal was confirmed and no
// discount row is left
func (p *CheckoutPage) IsCouponRemoved(ctx context.Context) (bool, error) {
	shown, err := p.probe(ctx, SuccessMessage, browser.Visible, p.Timeout)
	if err != nil || !shown {
		return false, err
	}
	message, err := p.TextOf(ctx, SuccessMessage)
	if err != nil {
		return false, err
	}
	if message != couponRemovedMessage {
		return false, nil
	}
	return p.probe(ctx, AppliedCoupon, browser.Invisible, p.Timeout)
}

// ClearFields empties the given billing fields
func (p *CheckoutPage) ClearFields(ctx context.Context, fields ...browser.Locator) error {
	for _, field := range fields {
		el, err := p.WaitForElement(ctx, field)
		if err != nil {
			return err
		}
		if err := el.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", field, err)
		}
	}
	return nil
}

// FillFields types each value into its field
func (p *CheckoutPage) FillFields(ctx context.Context, values map[browser.Locator]string) error {
	for field, value := range values {
		if err := p.Type(ctx, field, value); err != nil {
			return err
		}
	}
	return nil
}

// FieldValue returns the current value of a billing field
func (p *CheckoutPage) FieldValue(ctx context.Context, field browser.Locator) (string, error) {
	el, err := p.WaitForElement(ctx, field)
	if err != nil {
		return "", err
	}
	return el.Attribute(ctx, "value")
}

// WaitingLoadBlockInvisible waits for the loading overlay to go away
func (p *CheckoutPage) WaitingLoadBlockInvisible(ctx context.Context) error {
	return p.WaitInvisible(ctx, LoadBlock)
}

// OrderingProducts presses the place order button
func (p *CheckoutPage) OrderingProducts(ctx context.Context) error {
	return p.Click(ctx, PlaceOrderButton)
}

// ErrorMessages returns the texts of the error notice lines
func (p *CheckoutPage) ErrorMessages(ctx context.Context) ([]string, error) {
	alerts, err := p.WaitForElements(ctx, ErrorAlerts)
	if err != nil {
		return nil, err
	}
	messages := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		text, err := alert.Text(ctx)
		if err != nil {
			return nil, err
		}
		messages = append(messages, strings.TrimSpace(text))
	}
	return messages, nil
}

// PaymentVariants returns the payment method entries
func (p *CheckoutPage) PaymentVariants(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, PaymentVariants)
}

// SelectPaymentMethod picks the payment method whose label contains title
func (p *CheckoutPage) SelectPaymentMethod(ctx context.Context, title string) error {
	variants, err := p.PaymentVariants(ctx)
	if err != nil {
		return err
	}
	for _, variant := range variants {
		label, err := p.ElementFrom(ctx, variant, PaymentLabel)
		if err != nil {
			return err
		}
		text, err := label.Text(ctx)
		if err != nil {
			return err
		}
		if strings.Contains(text, title) {
			return p.ClickBy(ctx, label)
		}
	}
	return fmt.Errorf("%w: payment method %q", browser.ErrNoSuchElement, title)
}
