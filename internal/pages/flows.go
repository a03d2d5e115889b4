package pages

import (
	"context"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// GetAnyProductFromCatalog opens the i-th card of catalog and returns the
// session together with the product title read from the card
func GetAnyProductFromCatalog(ctx context.Context, catalog *CatalogPage, i int) (browser.Driver, string, error) {
	products, err := catalog.Products(ctx)
	if err != nil {
		return nil, "", err
	}
	product, err := nth(products, i, "catalog product")
	if err != nil {
		return nil, "", err
	}

	text, err := product.Text(ctx)
	if err != nil {
		return nil, "", err
	}
	title := CatalogCardTitle(text)

	link, err := catalog.ElementFrom(ctx, product, CardLink)
	if err != nil {
		return nil, "", err
	}
	if err := catalog.ScrollTo(ctx, link); err != nil {
		return nil, "", err
	}
	if err := catalog.follow(ctx, link); err != nil {
		return nil, "", err
	}

	return catalog.Driver, title, nil
}

// GetOrderingProductTitle opens the i-th order of the account, clicks
// through to its first product and returns that product's title
func GetOrderingProductTitle(ctx context.Context, account *MyAccountPage, i int) (string, error) {
	orders, err := account.GoToOrderBlock(ctx)
	if err != nil {
		return "", err
	}
	rows, err := orders.Orders(ctx)
	if err != nil {
		return "", err
	}
	row, err := nth(rows, i, "order")
	if err != nil {
		return "", err
	}

	_, link, err := orders.TitleAndLink(ctx, row, i)
	if err != nil {
		return "", err
	}
	detail, err := orders.GoToOrderDetailPageAfterClickTo(ctx, link)
	if err != nil {
		return "", err
	}

	product, err := detail.Product(ctx)
	if err != nil {
		return "", err
	}
	title, err := product.Text(ctx)
	if err != nil {
		return "", err
	}
	if err := detail.ClickBy(ctx, product); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}
