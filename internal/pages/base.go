// Package pages holds page objects for the intershop storefront. Each page
// object locates elements by a fixed locator table, waits for them to
// become usable and performs a single interaction per method.
package pages

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// probeLimit caps how long absence probes wait before concluding that an
// element is not on the page.
const probeLimit = 2 * time.Second

// BasePage carries the browser session shared by all page objects.
type BasePage struct {
	Driver  browser.Driver
	BaseURL string
	Site    string
	Timeout time.Duration
	Logger  *logrus.Entry

	path string
}

// NewBasePage wraps driver for the shop at baseURL. Document titles are
// expected to end in " — site".
func NewBasePage(driver browser.Driver, baseURL, site string, timeout time.Duration, logger *logrus.Logger) *BasePage {
	return &BasePage{
		Driver:  driver,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Site:    site,
		Timeout: timeout,
		Logger:  logger.WithField("browser", driver.Name()),
		path:    "/",
	}
}

// at returns a copy of the page bound to path, logging under name
func (b *BasePage) at(name, path string) *BasePage {
	c := *b
	c.path = path
	c.Logger = b.Logger.WithField("page", name)
	return &c
}

// URL returns the absolute address of path
func (b *BasePage) URL(path string) string {
	return b.BaseURL + path
}

// Open navigates to path on the shop
func (b *BasePage) Open(ctx context.Context, path string) error {
	if err := b.Driver.Navigate(ctx, b.URL(path)); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// Load opens the page's own address, or reloads when it has none
func (b *BasePage) Load(ctx context.Context) error {
	if b.path == "" {
		return b.Driver.Reload(ctx)
	}
	return b.Open(ctx, b.path)
}

// DocumentTitle returns the <title> of the current document
func (b *BasePage) DocumentTitle(ctx context.Context) (string, error) {
	return b.Driver.Title(ctx)
}

// CurrentURL returns the current location
func (b *BasePage) CurrentURL(ctx context.Context) (string, error) {
	return b.Driver.CurrentURL(ctx)
}

// WaitForElement waits for the first match of loc to be visible
func (b *BasePage) WaitForElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	found, err := browser.WaitFor(ctx, b.Driver, loc, browser.Visible, b.Timeout)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

// WaitForElements waits for every match of loc to be visible
func (b *BasePage) WaitForElements(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	return browser.WaitFor(ctx, b.Driver, loc, browser.AllVisible, b.Timeout)
}

// WaitForPresence waits for loc to match at least one element, shown or not
func (b *BasePage) WaitForPresence(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	return browser.WaitFor(ctx, b.Driver, loc, browser.Present, b.Timeout)
}

// ElementIsClickable waits for the first match of loc to be visible and enabled
func (b *BasePage) ElementIsClickable(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	found, err := browser.WaitFor(ctx, b.Driver, loc, browser.Clickable, b.Timeout)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

// WaitInvisible waits until no match of loc is displayed
func (b *BasePage) WaitInvisible(ctx context.Context, loc browser.Locator) error {
	_, err := browser.WaitFor(ctx, b.Driver, loc, browser.Invisible, b.Timeout)
	return err
}

// Click waits for loc to be clickable and clicks it
func (b *BasePage) Click(ctx context.Context, loc browser.Locator) error {
	el, err := b.ElementIsClickable(ctx, loc)
	if err != nil {
		return err
	}
	return b.ClickBy(ctx, el)
}

// ClickBy clicks an element that was already located
func (b *BasePage) ClickBy(ctx context.Context, el browser.Element) error {
	return el.Click(ctx)
}

// Type replaces the value of the field at loc with text
func (b *BasePage) Type(ctx context.Context, loc browser.Locator, text string) error {
	el, err := b.WaitForElement(ctx, loc)
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear %s: %w", loc, err)
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", loc, err)
	}
	return nil
}

// ScrollTo scrolls el into the viewport
func (b *BasePage) ScrollTo(ctx context.Context, el browser.Element) error {
	return el.ScrollIntoView(ctx)
}

// TextOf returns the rendered text of the first visible match of loc
func (b *BasePage) TextOf(ctx context.Context, loc browser.Locator) (string, error) {
	el, err := b.WaitForElement(ctx, loc)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ElementFrom returns the first child of parent matching loc
func (b *BasePage) ElementFrom(ctx context.Context, parent browser.Element, loc browser.Locator) (browser.Element, error) {
	found, err := browser.WaitWithin(ctx, parent, loc, browser.Present, b.Timeout)
	if err != nil {
		return nil, err
	}
	return found[0], nil
}

// IsPresent reports whether loc matches within timeout. A timeout is an
// answer, not an error.
func (b *BasePage) IsPresent(ctx context.Context, loc browser.Locator, timeout time.Duration) (bool, error) {
	return b.probe(ctx, loc, browser.Present, timeout)
}

func (b *BasePage) probe(ctx context.Context, loc browser.Locator, cond browser.Condition, timeout time.Duration) (bool, error) {
	_, err := browser.WaitFor(ctx, b.Driver, loc, cond, timeout)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, browser.ErrTimeout):
		b.Logger.WithError(err).Debug("probe timed out")
		return false, nil
	default:
		return false, err
	}
}

// probeTimeout is the wait used when absence of an element is the
// expected answer
func (b *BasePage) probeTimeout() time.Duration {
	if b.Timeout < probeLimit {
		return b.Timeout
	}
	return probeLimit
}

// follow clicks link and, when the browser refuses the click, loads the
// link target directly
func (b *BasePage) follow(ctx context.Context, link browser.Element) error {
	err := b.ClickBy(ctx, link)
	if err == nil || !errors.Is(err, browser.ErrNotInteractable) {
		return err
	}

	b.Logger.WithError(err).Error("link not interactable, following href")
	href, attrErr := link.Attribute(ctx, "href")
	if attrErr != nil || href == "" {
		return fmt.Errorf("link has no usable href: %w", err)
	}
	target, resolveErr := b.resolve(ctx, href)
	if resolveErr != nil {
		return resolveErr
	}
	return b.Driver.Navigate(ctx, target)
}

// resolve turns an href into an absolute URL against the current location
func (b *BasePage) resolve(ctx context.Context, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}
	if ref.IsAbs() {
		return href, nil
	}

	current, err := b.Driver.CurrentURL(ctx)
	if err != nil || current == "" {
		current = b.BaseURL + "/"
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid current url %q: %w", current, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// nth returns els[i] or an error naming what was being indexed
func nth(els []browser.Element, i int, what string) (browser.Element, error) {
	if i < 0 || i >= len(els) {
		return nil, fmt.Errorf("%w: %s #%d of %d", browser.ErrNoSuchElement, what, i, len(els))
	}
	return els[i], nil
}
