package pages

import (
	"context"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Catalog page locators
var (
	CatalogTitle    = browser.XPath("//h1[contains(@class, 'page-title')]")
	CatalogProducts = browser.XPath("//ul[@class='products columns-4']/li")
	CardLink        = browser.TagName("a")
)

// CatalogPage is the product listing of the whole catalog or one category
type CatalogPage struct {
	*BasePage
	title string
}

// NewCatalogPage binds the current document as the listing titled title
func NewCatalogPage(base *BasePage, title string) *CatalogPage {
	return &CatalogPage{BasePage: base.at("catalog", ""), title: title}
}

// Expected returns the title the page was opened for
func (p *CatalogPage) Expected() string { return p.title }

// Title returns the listing heading
func (p *CatalogPage) Title(ctx context.Context) (string, error) {
	return p.TextOf(ctx, CatalogTitle)
}

// Products returns the product cards of the listing
func (p *CatalogPage) Products(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, CatalogProducts)
}
