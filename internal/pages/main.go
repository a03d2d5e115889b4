package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Main page locators
var (
	CatalogBlocks     = browser.XPath("//section[@id='promo-section1']/aside[contains(@class, 'widget_storemo')]")
	CatalogBlockTitle = browser.TagName("h4")
	CatalogBlockLink  = browser.TagName("a")
	SalesProducts     = browser.CSS("#accesspress_store_product-2 ul.new-prod-slide > li")
	ArrivalsProducts  = browser.CSS("#accesspress_store_product-3 ul.new-prod-slide > li")
	SlideLink         = browser.CSS("a.woocommerce-LoopProduct-link")
	SlideTitle        = browser.TagName("h3")
	PosterTitle       = browser.CSS("#accesspress_store_full_promo-2 h2.promo-title")
	PosterButton      = browser.CSS("#accesspress_store_full_promo-2 a.promo-button")
	ViewedProducts    = browser.XPath("//aside[contains(@class, 'widget_recently_viewed_products')]//ul[@class='product_list_widget']/li/a")
	ViewedTitle       = browser.CSS("span.product-title")
)

// MainPage is the shop front page
type MainPage struct {
	*BasePage
}

// NewMainPage returns the main page object; call Load to open it
func NewMainPage(base *BasePage) *MainPage {
	return &MainPage{BasePage: base.at("main", "/")}
}

// CatalogAndTitle returns the link and title of the i-th catalog promo block
func (p *MainPage) CatalogAndTitle(ctx context.Context, i int) (browser.Element, string, error) {
	blocks, err := p.WaitForElements(ctx, CatalogBlocks)
	if err != nil {
		return nil, "", err
	}
	block, err := nth(blocks, i, "catalog block")
	if err != nil {
		return nil, "", err
	}

	link, err := p.ElementFrom(ctx, block, CatalogBlockLink)
	if err != nil {
		return nil, "", err
	}
	heading, err := p.ElementFrom(ctx, block, CatalogBlockTitle)
	if err != nil {
		return nil, "", err
	}
	title, err := heading.Text(ctx)
	if err != nil {
		return nil, "", err
	}
	return link, strings.TrimSpace(title), nil
}

// GoToProductFromSalesSection opens the i-th product of the sales slider
// and returns the title as displayed there
func (p *MainPage) GoToProductFromSalesSection(ctx context.Context, i int) (*ProductPage, string, error) {
	return p.goToSlide(ctx, SalesProducts, i, "sales product")
}

// GoToProductFromNewArrivalsSection opens the i-th product of the new
// arrivals slider
func (p *MainPage) GoToProductFromNewArrivalsSection(ctx context.Context, i int) (*ProductPage, string, error) {
	return p.goToSlide(ctx, ArrivalsProducts, i, "new arrival")
}

func (p *MainPage) goToSlide(ctx context.Context, slides browser.Locator, i int, what string) (*ProductPage, string, error) {
	items, err := p.WaitForPresence(ctx, slides)
	if err != nil {
		return nil, "", err
	}
	item, err := nth(items, i, what)
	if err != nil {
		return nil, "", err
	}

	link, err := p.ElementFrom(ctx, item, SlideLink)
	if err != nil {
		return nil, "", err
	}
	heading, err := p.ElementFrom(ctx, item, SlideTitle)
	if err != nil {
		return nil, "", err
	}
	if err := p.ScrollTo(ctx, link); err != nil {
		return nil, "", err
	}
	title, err := heading.Text(ctx)
	if err != nil {
		return nil, "", err
	}

	if err := p.follow(ctx, link); err != nil {
		return nil, "", fmt.Errorf("failed to open %s %d: %w", what, i, err)
	}
	product, err := NewProductPage(ctx, p.BasePage, "")
	if err != nil {
		return nil, "", err
	}
	return product, strings.TrimSpace(title), nil
}

// ProductAndTitleFromPosterSection follows the poster button
func (p *MainPage) ProductAndTitleFromPosterSection(ctx context.Context) (*ProductPage, string, error) {
	title, err := p.TextOf(ctx, PosterTitle)
	if err != nil {
		return nil, "", err
	}
	if err := p.Click(ctx, PosterButton); err != nil {
		return nil, "", err
	}
	product, err := NewProductPage(ctx, p.BasePage, "")
	if err != nil {
		return nil, "", err
	}
	return product, title, nil
}

// GoToViewedProduct opens the i-th entry of the recently viewed widget
func (p *MainPage) GoToViewedProduct(ctx context.Context, i int) (*ProductPage, string, error) {
	links, err := p.WaitForElements(ctx, ViewedProducts)
	if err != nil {
		return nil, "", err
	}
	link, err := nth(links, i, "viewed product")
	if err != nil {
		return nil, "", err
	}
	heading, err := p.ElementFrom(ctx, link, ViewedTitle)
	if err != nil {
		return nil, "", err
	}
	title, err := heading.Text(ctx)
	if err != nil {
		return nil, "", err
	}

	if err := p.follow(ctx, link); err != nil {
		return nil, "", err
	}
	product, err := NewProductPage(ctx, p.BasePage, "")
	if err != nil {
		return nil, "", err
	}
	return product, strings.TrimSpace(title), nil
}
