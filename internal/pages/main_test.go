package pages

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbox-qa/intershop/internal/browser"
	"github.com/skillbox-qa/intershop/internal/browser/browsertest"
)

func slide(d *browsertest.Driver, shown, slug string) *browsertest.Element {
	link := navigatesTo(d, browsertest.NewElement(shown).WithAttr("href", "/product/"+slug+"/"), "/product/"+slug+"/")
	return browsertest.NewElement(shown+"\n1 000,00 ₽").
		WithChild(SlideLink, link).
		WithChild(SlideTitle, browsertest.NewElement(shown))
}

func TestMainPage_CatalogAndTitle(t *testing.T) {
	// GIVEN a main page with three promo blocks
	d, base := newSession()
	page := browsertest.NewPage("Главная — Skillbox")
	for i, title := range []string{"Книги", "Планшеты", "Фотоаппараты"} {
		link := browsertest.NewElement(title).WithAttr("href", fmt.Sprintf("/product-category/%d/", i))
		page.Add(CatalogBlocks, browsertest.NewElement(title).
			WithChild(CatalogBlockLink, link).
			WithChild(CatalogBlockTitle, browsertest.NewElement(" "+title+" ")))
	}
	serve(d, "/", page)
	main := NewMainPage(base)
	require.NoError(t, main.Load(context.Background()))

	// WHEN
	link, title, err := main.CatalogAndTitle(context.Background(), 2)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "Фотоаппараты", title)
	href, _ := link.Attribute(context.Background(), "href")
	assert.Equal(t, "/product-category/2/", href)

	_, _, err = main.CatalogAndTitle(context.Background(), 3)
	assert.ErrorIs(t, err, browser.ErrNoSuchElement)
}

func TestMainPage_GoToProductFromSections(t *testing.T) {
	tests := []struct {
		name    string
		section browser.Locator
		open    func(*MainPage) (*ProductPage, string, error)
	}{
		{name: "sales", section: SalesProducts, open: func(p *MainPage) (*ProductPage, string, error) {
			return p.GoToProductFromSalesSection(context.Background(), 1)
		}},
		{name: "new arrivals", section: ArrivalsProducts, open: func(p *MainPage) (*ProductPage, string, error) {
			return p.GoToProductFromNewArrivalsSection(context.Background(), 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			d, base := newSession()
			serve(d, "/", browsertest.NewPage("Главная — Skillbox").
				Add(tt.section, slide(d, "APPLE WATCH 6", "apple-watch-6"), slide(d, "ПЛАНШЕТ IPAD AIR", "ipad-air")))
			serve(d, "/product/ipad-air/", browsertest.NewPage("Планшет ipad air — Skillbox").
				Add(ProductTitle, browsertest.NewElement("Планшет ipad air")))
			main := NewMainPage(base)
			require.NoError(t, main.Load(context.Background()))

			// WHEN
			product, title, err := tt.open(main)

			// THEN
			require.NoError(t, err)
			assert.Equal(t, "ПЛАНШЕТ IPAD AIR", title)
			heading, err := product.Title(context.Background())
			require.NoError(t, err)
			assert.Equal(t, heading, Capitalize(title))
		})
	}
}

func TestMainPage_FollowsHrefWhenLinkNotInteractable(t *testing.T) {
	// GIVEN a slide whose link refuses clicks
	d, base := newSession()
	blocked := browsertest.NewElement("GOPRO").WithAttr("href", "/product/gopro-hero-9/")
	blocked.ClickErr = fmt.Errorf("%w: covered by slider arrow", browser.ErrNotInteractable)
	item := browsertest.NewElement("GOPRO").
		WithChild(SlideLink, blocked).
		WithChild(SlideTitle, browsertest.NewElement("ЭКШН-КАМЕРА GOPRO HERO 9"))
	serve(d, "/", browsertest.NewPage("Главная — Skillbox").Add(SalesProducts, item))
	main := NewMainPage(base)
	require.NoError(t, main.Load(context.Background()))

	// WHEN
	_, title, err := main.GoToProductFromSalesSection(context.Background(), 0)

	// THEN the href is loaded directly
	require.NoError(t, err)
	assert.Equal(t, "ЭКШН-КАМЕРА GOPRO HERO 9", title)
	assert.Equal(t, shopURL+"/product/gopro-hero-9/", current(t, d))
	assert.Equal(t, 1, blocked.Scrolled)
}

func TestMainPage_ProductAndTitleFromPosterSection(t *testing.T) {
	d, base := newSession()
	button := navigatesTo(d, browsertest.NewElement("Купить"), "/product/apple-watch-6/")
	serve(d, "/", browsertest.NewPage("Главная — Skillbox").
		Add(PosterTitle, browsertest.NewElement("APPLE WATCH")).
		Add(PosterButton, button))
	serve(d, "/product/apple-watch-6/", browsertest.NewPage("Apple watch 6 — Skillbox").
		Add(ProductTitle, browsertest.NewElement("Apple watch 6")))
	main := NewMainPage(base)
	require.NoError(t, main.Load(context.Background()))

	product, title, err := main.ProductAndTitleFromPosterSection(context.Background())

	require.NoError(t, err)
	heading, err := product.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Apple watch", Capitalize(title))
	assert.NotEqual(t, heading, Capitalize(title), "poster title is known to differ from the product")
}

func TestMainPage_GoToViewedProduct(t *testing.T) {
	d, base := newSession()
	viewed := func(name, slug string) *browsertest.Element {
		link := browsertest.NewElement(name).WithChild(ViewedTitle, browsertest.NewElement(name))
		return navigatesTo(d, link, "/product/"+slug+"/")
	}
	serve(d, "/", browsertest.NewPage("Главная — Skillbox").
		Add(ViewedProducts, viewed("Смартфон honor 50", "honor-50"), viewed("Планшет ipad air", "ipad-air")))
	serve(d, "/product/ipad-air/", browsertest.NewPage("Планшет ipad air — Skillbox").
		Add(ProductTitle, browsertest.NewElement("Планшет ipad air")))
	main := NewMainPage(base)
	require.NoError(t, main.Load(context.Background()))

	product, title, err := main.GoToViewedProduct(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Планшет ipad air", title)
	heading, _ := product.Title(context.Background())
	assert.Equal(t, title, heading)
}
