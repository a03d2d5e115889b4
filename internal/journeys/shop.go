package journeys

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/pages"
)

func init() {
	Register(Journey{
		Name:        "catalog-to-product",
		Description: "open the first sub-catalog from the main page and the first product in it",
		Run:         catalogToProduct,
	})
	Register(Journey{
		Name:        "add-to-cart",
		Description: "add a product from the sales block to the cart",
		Run:         addToCart,
	})
	Register(Journey{
		Name:        "apply-coupon",
		Description: "apply and remove a coupon at checkout",
		Run:         applyCoupon,
	})
	Register(Journey{
		Name:        "place-order",
		Description: "place an order as a guest with the first payment method",
		Run:         placeOrder,
	})
	Register(Journey{
		Name:        "account-orders",
		Description: "log in, place an order and find its product through the order history",
		Run:         accountOrders,
	})
}

func catalogToProduct(ctx context.Context, s *Session) error {
	main := pages.NewMainPage(s.BasePage)
	if err := main.Load(ctx); err != nil {
		return err
	}
	block := 0
	if len(s.Data.MainPage.CatalogBlocks) > 0 {
		block = s.Data.MainPage.CatalogBlocks[0]
	}
	link, title, err := main.CatalogAndTitle(ctx, block)
	if err != nil {
		return err
	}
	if err := main.ClickBy(ctx, link); err != nil {
		return err
	}

	expected := title
	if alias, ok := s.Data.MainPage.CatalogAliases[title]; ok {
		expected = alias
	}
	catalog := pages.NewCatalogPage(s.BasePage, expected)
	heading, err := catalog.Title(ctx)
	if err != nil {
		return err
	}
	if heading != catalog.Expected() {
		return fmt.Errorf("catalog heading is %q, want %q", heading, catalog.Expected())
	}

	_, name, err := pages.GetAnyProductFromCatalog(ctx, catalog, 0)
	if err != nil {
		return err
	}
	_, err = pages.NewProductPage(ctx, s.BasePage, name)
	return err
}

// AddSaleProduct puts the first in-stock product of the sales block into
// the cart and returns its name
func AddSaleProduct(ctx context.Context, s *Session) (string, error) {
	main := pages.NewMainPage(s.BasePage)
	indexes := s.Data.MainPage.SalesProducts
	if len(indexes) == 0 {
		indexes = []int{0}
	}

	for _, i := range indexes {
		if err := main.Load(ctx); err != nil {
			return "", err
		}
		product, title, err := main.GoToProductFromSalesSection(ctx, i)
		if err != nil {
			return "", err
		}
		inStock, err := product.IsAvailableInStock(ctx)
		if err != nil {
			return "", err
		}
		if !inStock {
			s.Logger.WithField("product", title).Warn("sale product out of stock, trying next")
			continue
		}

		if err := product.AddProductToCart(ctx); err != nil {
			return "", err
		}
		message, err := product.SuccessMessageAfterAddToCart(ctx)
		if err != nil {
			return "", err
		}
		if !strings.Contains(message, s.Data.Messages.AddedToCart) {
			return "", fmt.Errorf("unexpected add to cart notice %q", message)
		}
		return pages.Capitalize(title), nil
	}
	return "", fmt.Errorf("%w: no sale product in stock", browser.ErrNoSuchElement)
}

func addToCart(ctx context.Context, s *Session) error {
	name, err := AddSaleProduct(ctx, s)
	if err != nil {
		return err
	}

	cart := pages.NewCartPage(s.BasePage)
	if err := cart.Load(ctx); err != nil {
		return err
	}
	names, err := cart.ItemNames(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(names, name) {
		return fmt.Errorf("cart holds %v, want %q among them", names, name)
	}
	return nil
}

func applyCoupon(ctx context.Context, s *Session) error {
	if _, err := AddSaleProduct(ctx, s); err != nil {
		return err
	}

	checkout := pages.NewCheckoutPage(s.BasePage)
	if err := checkout.Load(ctx); err != nil {
		return err
	}
	applied, err := checkout.IsCouponAlreadyApplied(ctx)
	if err != nil {
		return err
	}
	if applied {
		if err := checkout.RemoveAppliedCoupon(ctx); err != nil {
			return err
		}
		if err := checkout.WaitingLoadBlockInvisible(ctx); err != nil {
			return err
		}
	}

	if err := checkout.ApplyCoupon(ctx, s.Data.Coupons[0]); err != nil {
		return err
	}
	message, err := checkout.SuccessMessageByApplyCoupon(ctx)
	if err != nil {
		return err
	}
	if message != s.Data.Messages.CouponApplied {
		return fmt.Errorf("coupon %s: notice is %q, want %q", s.Data.Coupons[0], message, s.Data.Messages.CouponApplied)
	}

	if err := checkout.RemoveAppliedCoupon(ctx); err != nil {
		return err
	}
	removed, err := checkout.IsCouponRemoved(ctx)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("coupon %s was not removed", s.Data.Coupons[0])
	}
	return nil
}

// FillBilling types the suite billing profile into the checkout form
func FillBilling(ctx context.Context, checkout *pages.CheckoutPage, b config.BillingProfile) error {
	return checkout.FillFields(ctx, map[browser.Locator]string{
		pages.NameField:     b.FirstName,
		pages.LastNameField: b.LastName,
		pages.AddressField:  b.Address,
		pages.CityField:     b.City,
		pages.StateField:    b.State,
		pages.PostcodeField: b.Postcode,
		pages.PhoneField:    b.Phone,
		pages.EmailField:    b.Email,
	})
}

// checkoutWithBilling fills the billing form, picks method and places the
// order; it returns the order received page
func checkoutWithBilling(ctx context.Context, s *Session, method string) (*pages.OrderReceivedPage, error) {
	checkout := pages.NewCheckoutPage(s.BasePage)
	if err := checkout.Load(ctx); err != nil {
		return nil, err
	}
	if err := FillBilling(ctx, checkout, s.Data.Billing); err != nil {
		return nil, err
	}
	if err := checkout.SelectPaymentMethod(ctx, method); err != nil {
		return nil, err
	}
	if err := checkout.WaitingLoadBlockInvisible(ctx); err != nil {
		return nil, err
	}
	if err := checkout.OrderingProducts(ctx); err != nil {
		return nil, err
	}
	return pages.NewOrderReceivedPage(s.BasePage), nil
}

func placeOrder(ctx context.Context, s *Session) error {
	if _, err := AddSaleProduct(ctx, s); err != nil {
		return err
	}

	method := s.Data.PaymentMethods[0]
	received, err := checkoutWithBilling(ctx, s, method)
	if err != nil {
		return err
	}
	got, err := received.PaymentMethod(ctx)
	if err != nil {
		return err
	}
	if got != method {
		return fmt.Errorf("order placed with %q, want %q", got, method)
	}
	number, err := received.OrderNumber(ctx)
	if err != nil {
		return err
	}
	s.Logger.WithField("order", number).Info("order placed")
	return nil
}

func accountOrders(ctx context.Context, s *Session) error {
	account := pages.NewMyAccountPage(s.BasePage)
	if err := account.Load(ctx); err != nil {
		return err
	}
	if err := account.Login(ctx, s.Data.Customer.Username, s.Data.Customer.Password); err != nil {
		return err
	}
	loggedIn, err := account.IsLoggedIn(ctx)
	if err != nil {
		return err
	}
	if !loggedIn {
		reason, _ := account.LoginError(ctx)
		return fmt.Errorf("login as %s failed: %s", s.Data.Customer.Username, reason)
	}

	name, err := AddSaleProduct(ctx, s)
	if err != nil {
		return err
	}
	if _, err := checkoutWithBilling(ctx, s, s.Data.PaymentMethods[len(s.Data.PaymentMethods)-1]); err != nil {
		return err
	}

	if err := account.Load(ctx); err != nil {
		return err
	}
	title, err := pages.GetOrderingProductTitle(ctx, account, 0)
	if err != nil {
		return err
	}
	if title != name {
		return fmt.Errorf("latest order holds %q, want %q", title, name)
	}
	_, err = pages.NewProductPage(ctx, s.BasePage, title)
	return err
}
