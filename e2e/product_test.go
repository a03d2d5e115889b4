//go:build e2e

package e2e

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillbox-qa/intershop/internal/journeys"
	"github.com/skillbox-qa/intershop/internal/pages"
)

// catalogProduct opens the first product of the first promo catalog
func catalogProduct(t *testing.T, ctx context.Context, s *journeys.Session) *pages.ProductPage {
	t.Helper()
	main := mainPage(t, ctx, s)
	link, title, err := main.CatalogAndTitle(ctx, 0)
	require.NoError(t, err)
	require.NoError(t, main.ClickBy(ctx, link))
	if alias, ok := s.Data.MainPage.CatalogAliases[title]; ok {
		title = alias
	}

	_, name, err := pages.GetAnyProductFromCatalog(ctx, pages.NewCatalogPage(s.BasePage, title), 0)
	require.NoError(t, err)
	product, err := pages.NewProductPage(ctx, s.BasePage, name)
	require.NoError(t, err)
	return product
}

// TestGoToProductFromCatalog
// Feature: Product card
//
//	Scenario: Open a product from a catalog
//	  Given I am on a catalog page
//	  When I click the first product card
//	  Then the product page is titled after the card
func TestGoToProductFromCatalog(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		heading, err := product.Title(ctx)
		require.NoError(t, err)
		expect(t, s, heading == product.Name(), "Couldn't open product from catalog: %q vs %q", heading, product.Name())
	})
}

// TestChangeQuantity
// Feature: Product card
//
//	Scenario: Change the quantity to buy
//	  Given a product that is in stock
//	  When I set the quantity to 3
//	  Then the quantity field holds 3
func TestChangeQuantity(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		inStock, err := product.IsAvailableInStock(ctx)
		require.NoError(t, err)
		if !inStock {
			t.Skipf("%s is out of stock", product.Name())
		}
		require.NoError(t, product.ChangeCountBuyingProduct(ctx, 3))

		quantity, err := product.Quantity(ctx)
		require.NoError(t, err)
		expect(t, s, quantity == "3", "Couldn't change the quantity: %q", quantity)
	})
}

// TestMagnifyingGlass
// Feature: Product card
//
//	Scenario: Zoom the product photo
//	  Given a product page
//	  When I click the magnifying glass
//	  Then the gallery opens
func TestMagnifyingGlass(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		available, err := product.IsMagnifyingGlassAvailable(ctx)
		require.NoError(t, err)
		require.True(t, available, "no magnifying glass on %s", product.Name())
		require.NoError(t, product.ClickToMagnifyingGlass(ctx))

		open, err := product.IsGalleryOpen(ctx)
		require.NoError(t, err)
		expect(t, s, open, "Gallery did not open")
	})
}

// TestLeaveFeedback
// Feature: Product card
//
//	Scenario: Leave a review and repeat it
//	  Given a product page
//	  When I leave a review
//	  Then the review is shown
//	  And leaving it again is rejected as a duplicate
func TestLeaveFeedback(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)
		comment := s.Data.Review.Comment + " " + uuid.NewString()[:8]

		// When I leave a review
		require.NoError(t, product.SwitchToFeedbackTab(ctx))
		available, err := product.IsCommentFieldAvailable(ctx)
		require.NoError(t, err)
		require.True(t, available, "no comment field")
		require.NoError(t, product.LeaveFeedback(ctx, s.Data.Review.Stars, comment))

		// Then the review is shown
		exists, err := product.IsExistFeedback(ctx, comment, s.Timeout)
		require.NoError(t, err)
		expect(t, s, exists, "Review %q not shown", comment)

		// And leaving it again is rejected as a duplicate
		require.NoError(t, product.SwitchToFeedbackTab(ctx))
		require.NoError(t, product.LeaveFeedback(ctx, s.Data.Review.Stars, comment))
		warning, err := product.GoBackInDetectDuplicateFeedback(ctx)
		require.NoError(t, err)
		expect(t, s, strings.Contains(warning, s.Data.Messages.DuplicateComment), "Duplicate review accepted: %q", warning)
	})
}

// TestGoToRelatedProduct
// Feature: Product card
//
//	Scenario: Open an out of stock related product
//	  Given a product page with related products
//	  When I follow the related product offering "Read more"
//	  Then the related product page opens
func TestGoToRelatedProduct(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		_, title, err := product.GoToRelatedProduct(ctx, pages.ReadMore)
		require.NoError(t, err)

		_, err = pages.NewProductPage(ctx, s.BasePage, title)
		expect(t, s, err == nil, "Couldn't open related product %q: %v", title, err)
	})
}

// TestAddRelatedProductToCart
// Feature: Product card
//
//	Scenario: Buy a related product
//	  Given a product page with related products
//	  When I add a related product to the cart
//	  Then the cart lists it
func TestAddRelatedProductToCart(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		_, title, err := product.AddRelatedProductToCart(ctx)
		require.NoError(t, err)
		cart, err := product.GoToCartAfterAddRelatedProduct(ctx)
		require.NoError(t, err)

		names, err := cart.ItemNames(ctx)
		require.NoError(t, err)
		expect(t, s, slices.Contains(names, title), "Cart %v misses %q", names, title)
	})
}

// TestSidebarWidgets
// Feature: Product card
//
//	Scenario: Sidebar widgets are filled
//	  Given a product page
//	  Then the goods categories and goods widgets list entries
func TestSidebarWidgets(t *testing.T) {
	forEachBrowser(t, func(t *testing.T, s *journeys.Session) {
		ctx := context.Background()
		product := catalogProduct(t, ctx, s)

		categories, err := product.CategoriesFromGoodsCategoryBlock(ctx)
		require.NoError(t, err)
		expect(t, s, len(categories) > 0, "Goods categories widget is empty")

		goods, err := product.AllProductsFromGoodsBlock(ctx)
		require.NoError(t, err)
		expect(t, s, len(goods) > 0, "Goods widget is empty")
	})
}
