package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Product page locators
var (
	ProductTitle           = browser.XPath("//h1[@class='product_title entry-title']")
	MagnifyingGlass        = browser.ClassName("woocommerce-product-gallery__trigger")
	GalleryOverlay         = browser.CSS("div.pswp.pswp--open")
	OutOfStockMarker       = browser.XPath("//p[@class='stock out-of-stock']")
	CartButton             = browser.Name("add-to-cart")
	FeedbackTab            = browser.XPath("//a[@href='#tab-reviews']")
	FeedbackMarks          = browser.XPath("//p[@class='stars']//a")
	FeedbackComment        = browser.ID("comment")
	FeedbackButton         = browser.ID("submit")
	RelatedProducts        = browser.XPath("//ul[@class='products columns-4']/li")
	RelatedProductButton   = browser.CSS("a.button.product_type_simple")
	CategoriesFromBlock    = browser.XPath("//ul[@class='product-categories']//li")
	ProductsFromGoodsBlock = browser.XPath("//ul[@class='product_list_widget']/li/a")
	ProductQuantity        = browser.XPath("//input[@type='number']")
	ProductCountInStock    = browser.XPath("//p[@class='stock in-stock']")
	AddToCartAlert         = browser.XPath("//div[@role='alert']")
	AddedToCartLink        = browser.XPath("//a[@class='added_to_cart wc-forward']")
	ComeBackLink           = browser.LinkText("« Back")
	DuplicateWarning       = browser.XPath("//div[@class='wp-die-message']//p[1]")
)

const (
	// ReadMore is the caption of catalog buttons for products out of stock
	ReadMore = "Read more"

	// the add to cart caption as rendered by the stylesheet
	addToCartCaption       = "В КОРЗИНУ"
	duplicateCommentMarker = "Duplicate comment detected;"
)

// ProductPage is a single product card
type ProductPage struct {
	*BasePage
	name string
}

// NewProductPage binds the current document as the page of the named
// product. The document title must read "<name> — <site>"; an empty name
// skips the check.
func NewProductPage(ctx context.Context, base *BasePage, name string) (*ProductPage, error) {
	p := &ProductPage{BasePage: base.at("product", ""), name: name}
	if name == "" {
		return p, nil
	}

	want := fmt.Sprintf("%s — %s", name, base.Site)
	deadline := time.Now().Add(base.Timeout)
	for {
		title, err := p.Driver.Title(ctx)
		if err != nil {
			return nil, err
		}
		if title == want {
			return p, nil
		}
		if !time.Now().Before(deadline) {
			current, _ := p.Driver.CurrentURL(ctx)
			return nil, fmt.Errorf("this is not %s, current product name is: %s on page: %s", name, title, current)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(browser.PollInterval):
		}
	}
}

// Name returns the product name the page was opened for
func (p *ProductPage) Name() string { return p.name }

// Title returns the product heading
func (p *ProductPage) Title(ctx context.Context) (string, error) {
	return p.TextOf(ctx, ProductTitle)
}

// IsQuantityFieldAvailable reports whether the quantity input is shown
func (p *ProductPage) IsQuantityFieldAvailable(ctx context.Context) (bool, error) {
	return p.probe(ctx, ProductQuantity, browser.Visible, p.Timeout)
}

// ChangeCountBuyingProduct types count into the quantity input when the
// product is in stock
func (p *ProductPage) ChangeCountBuyingProduct(ctx context.Context, count int) error {
	inStock, err := p.IsAvailableInStock(ctx)
	if err != nil || !inStock {
		return err
	}
	return p.Type(ctx, ProductQuantity, strconv.Itoa(count))
}

// Quantity returns the value typed into the quantity input
func (p *ProductPage) Quantity(ctx context.Context) (string, error) {
	el, err := p.WaitForElement(ctx, ProductQuantity)
	if err != nil {
		return "", err
	}
	return el.Attribute(ctx, "value")
}

// CountInStock returns the stock line, e.g. "30 в наличии"
func (p *ProductPage) CountInStock(ctx context.Context) (string, error) {
	return p.TextOf(ctx, ProductCountInStock)
}

// IsMagnifyingGlassAvailable reports whether the gallery trigger can be clicked
func (p *ProductPage) IsMagnifyingGlassAvailable(ctx context.Context) (bool, error) {
	return p.probe(ctx, MagnifyingGlass, browser.Clickable, p.Timeout)
}

// ClickToMagnifyingGlass opens the gallery
func (p *ProductPage) ClickToMagnifyingGlass(ctx context.Context) error {
	return p.Click(ctx, MagnifyingGlass)
}

// IsGalleryOpen reports whether the zoomed image overlay is shown
func (p *ProductPage) IsGalleryOpen(ctx context.Context) (bool, error) {
	return p.probe(ctx, GalleryOverlay, browser.Visible, p.Timeout)
}

// IsAvailableInStock reports true unless the out-of-stock marker shows up
func (p *ProductPage) IsAvailableInStock(ctx context.Context) (bool, error) {
	outOfStock, err := p.probe(ctx, OutOfStockMarker, browser.Visible, p.probeTimeout())
	if err != nil {
		return false, err
	}
	return !outOfStock, nil
}

// AddProductToCart presses the add to cart button
func (p *ProductPage) AddProductToCart(ctx context.Context) error {
	return p.Click(ctx, CartButton)
}

// SuccessMessageAfterAddToCart returns the notice shown after adding to cart
func (p *ProductPage) SuccessMessageAfterAddToCart(ctx context.Context) (string, error) {
	return p.TextOf(ctx, AddToCartAlert)
}

// SwitchToFeedbackTab scrolls down to the add to cart button and opens
// the reviews tab
func (p *ProductPage) SwitchToFeedbackTab(ctx context.Context) error {
	// out of stock products have no cart button; scroll to the heading instead
	anchor := CartButton
	if ok, err := p.IsPresent(ctx, CartButton, p.probeTimeout()); err != nil {
		return err
	} else if !ok {
		anchor = ProductTitle
	}

	el, err := p.WaitForElement(ctx, anchor)
	if err != nil {
		return err
	}
	if err := p.ScrollTo(ctx, el); err != nil {
		return err
	}
	return p.Click(ctx, FeedbackTab)
}

// IsCommentFieldAvailable reports whether the review textarea is shown
func (p *ProductPage) IsCommentFieldAvailable(ctx context.Context) (bool, error) {
	return p.probe(ctx, FeedbackComment, browser.Visible, p.Timeout)
}

// LeaveFeedback rates the product with stars (1 to 5) and submits comment
func (p *ProductPage) LeaveFeedback(ctx context.Context, stars int, comment string) error {
	marks, err := p.WaitForElements(ctx, FeedbackMarks)
	if err != nil {
		return err
	}
	if stars < 1 || stars > len(marks) {
		return fmt.Errorf("stars must be between 1 and %d, got %d", len(marks), stars)
	}
	if err := p.ClickBy(ctx, marks[stars-1]); err != nil {
		return err
	}

	if err := p.Type(ctx, FeedbackComment, comment); err != nil {
		return err
	}
	return p.Click(ctx, FeedbackButton)
}

// RelatedProducts returns the cards of the related products section
func (p *ProductPage) RelatedProducts(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, RelatedProducts)
}

// GoToRelatedProduct clicks the button of the first related card whose
// text contains secretWord and returns the session with the card's
// product title. A timeout or selector failure reloads the page and tries
// once more.
func (p *ProductPage) GoToRelatedProduct(ctx context.Context, secretWord string) (browser.Driver, string, error) {
	title, err := p.goToRelatedProduct(ctx, secretWord)
	if errors.Is(err, browser.ErrTimeout) || errors.Is(err, browser.ErrInvalidSelector) {
		p.Logger.WithError(err).Warn("related product not reachable, reloading")
		if err := p.Driver.Reload(ctx); err != nil {
			return p.Driver, "", err
		}
		title, err = p.goToRelatedProduct(ctx, secretWord)
	}
	if err != nil {
		current, _ := p.CurrentURL(ctx)
		p.Logger.WithError(err).WithField("url", current).Error("could not open related product")
		return p.Driver, "", err
	}
	return p.Driver, title, nil
}

func (p *ProductPage) goToRelatedProduct(ctx context.Context, secretWord string) (string, error) {
	products, err := p.RelatedProducts(ctx)
	if err != nil {
		return "", err
	}

	for _, product := range products {
		text, err := product.Text(ctx)
		if err != nil {
			return "", err
		}
		if !strings.Contains(text, secretWord) {
			continue
		}

		link, err := p.ElementFrom(ctx, product, RelatedProductButton)
		if err != nil {
			return "", err
		}
		if err := p.ScrollTo(ctx, product); err != nil {
			return "", err
		}
		if err := p.ClickBy(ctx, link); err != nil {
			return "", err
		}
		return RelatedCardTitle(text), nil
	}

	return "", fmt.Errorf("%w: no related product mentions %q", browser.ErrNoSuchElement, secretWord)
}

// AddRelatedProductToCart presses the add to cart button of the first
// related product that has one
func (p *ProductPage) AddRelatedProductToCart(ctx context.Context) (browser.Driver, string, error) {
	return p.GoToRelatedProduct(ctx, addToCartCaption)
}

// GoToCartAfterAddRelatedProduct follows the cart link shown on the card
// that was just added
func (p *ProductPage) GoToCartAfterAddRelatedProduct(ctx context.Context) (*CartPage, error) {
	link, err := p.WaitForElement(ctx, AddedToCartLink)
	if err != nil {
		return nil, err
	}
	if err := p.ClickBy(ctx, link); err != nil {
		return nil, err
	}
	return NewCartPage(p.BasePage), nil
}

// CategoriesFromGoodsCategoryBlock returns the entries of the categories widget
func (p *ProductPage) CategoriesFromGoodsCategoryBlock(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, CategoriesFromBlock)
}

// IsExistFeedback reports whether a review with exactly comment is listed
func (p *ProductPage) IsExistFeedback(ctx context.Context, comment string, timeout time.Duration) (bool, error) {
	loc := browser.XPath(fmt.Sprintf("//p[text()=%s]", browser.XPathLiteral(comment)))
	_, err := browser.WaitFor(ctx, p.Driver, loc, browser.Present, timeout)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, browser.ErrTimeout):
		p.Logger.WithError(err).Error("timeout exception")
		return false, nil
	default:
		return false, err
	}
}

// GoBackInDetectDuplicateFeedback reads the comment failure page and, when
// it reports a duplicate, follows its back link. It returns the warning.
func (p *ProductPage) GoBackInDetectDuplicateFeedback(ctx context.Context) (string, error) {
	warning, err := p.TextOf(ctx, DuplicateWarning)
	if err != nil {
		return "", err
	}
	p.Logger.WithField("warning", warning).Info("duplicate warning")

	if strings.Contains(warning, duplicateCommentMarker) {
		if err := p.Click(ctx, ComeBackLink); err != nil {
			return warning, err
		}
	}
	return warning, nil
}

// AllProductsFromGoodsBlock returns the links of the products widget
func (p *ProductPage) AllProductsFromGoodsBlock(ctx context.Context) ([]browser.Element, error) {
	return p.WaitForElements(ctx, ProductsFromGoodsBlock)
}
