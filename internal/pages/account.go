package pages

import (
	"context"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Order received page locators
var (
	ReceivedOrderNumber   = browser.CSS("li.woocommerce-order-overview__order strong")
	ReceivedPaymentMethod = browser.CSS("li.woocommerce-order-overview__payment-method strong")
)

// Account area locators
var (
	UsernameField  = browser.ID("username")
	PasswordField  = browser.ID("password")
	LoginButton    = browser.Name("login")
	OrdersNavLink  = browser.CSS("li.woocommerce-MyAccount-navigation-link--orders a")
	LoginError     = browser.XPath("//ul[@class='woocommerce-error']/li")
	Orders         = browser.CSS("tr.woocommerce-orders-table__row")
	OrderLink      = browser.CSS("td.woocommerce-orders-table__cell-order-number a")
	OrderedProduct = browser.CSS("td.woocommerce-table__product-name a")
)

// OrderReceivedPage is the thank-you page shown after checkout
type OrderReceivedPage struct {
	*BasePage
}

// NewOrderReceivedPage binds the current document as the order received page
func NewOrderReceivedPage(base *BasePage) *OrderReceivedPage {
	return &OrderReceivedPage{BasePage: base.at("order-received", "")}
}

// PaymentMethod returns the payment method title of the order
func (p *OrderReceivedPage) PaymentMethod(ctx context.Context) (string, error) {
	return p.TextOf(ctx, ReceivedPaymentMethod)
}

// OrderNumber returns the order number as printed
func (p *OrderReceivedPage) OrderNumber(ctx context.Context) (string, error) {
	return p.TextOf(ctx, ReceivedOrderNumber)
}

// MyAccountPage is the login form and account dashboard
type MyAccountPage struct {
	*BasePage
}

// NewMyAccountPage returns the account page object; call Load to open it
func NewMyAccountPage(base *BasePage) *MyAccountPage {
	return &MyAccountPage{BasePage: base.at("my-account", "/my-account/")}
}

// Login submits the login form
func (p *MyAccountPage) Login(ctx context.Context, username, password string) error {
	if err := p.Type(ctx, UsernameField, username); err != nil {
		return err
	}
	if err := p.Type(ctx, PasswordField, password); err != nil {
		return err
	}
	return p.Click(ctx, LoginButton)
}

// IsLoggedIn reports whether the account navigation is shown
func (p *MyAccountPage) IsLoggedIn(ctx context.Context) (bool, error) {
	return p.probe(ctx, OrdersNavLink, browser.Visible, p.Timeout)
}

// LoginError returns the error shown for a rejected login
func (p *MyAccountPage) LoginError(ctx context.Context) (string, error) {
	return p.TextOf(ctx, LoginError)
}

// GoToOrderBlock opens the order history
func (p *MyAccountPage) GoToOrderBlock(ctx context.Context) (*OrderPage, error) {
	if err := p.Click(ctx, OrdersNavLink); err != nil {
		return nil, err
	}
	return &OrderPage{BasePage: p.at("orders", "/my-account/orders/")}, nil
}

// OrderPage is the customer's order history
type OrderPage struct {
	*BasePage
}

// Orders returns the order rows
func (p *OrderPage) Orders(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, Orders)
}

// TitleAndLink returns the number text and the link of an order row; i
// is the row index used for logging
func (p *OrderPage) TitleAndLink(ctx context.Context, order browser.Element, i int) (string, browser.Element, error) {
	link, err := p.ElementFrom(ctx, order, OrderLink)
	if err != nil {
		return "", nil, err
	}
	title, err := link.Text(ctx)
	if err != nil {
		return "", nil, err
	}
	title = strings.TrimSpace(title)
	p.Logger.WithField("row", i).WithField("order", title).Debug("order located")
	return title, link, nil
}

// GoToOrderDetailPageAfterClickTo follows an order link
func (p *OrderPage) GoToOrderDetailPageAfterClickTo(ctx context.Context, link browser.Element) (*OrderDetailPage, error) {
	if err := p.follow(ctx, link); err != nil {
		return nil, err
	}
	return &OrderDetailPage{BasePage: p.at("view-order", "")}, nil
}

// OrderDetailPage shows one order of the customer
type OrderDetailPage struct {
	*BasePage
}

// Product returns the link of the first ordered product
func (p *OrderDetailPage) Product(ctx context.Context) (browser.Element, error) {
	return p.WaitForElement(ctx, OrderedProduct)
}
