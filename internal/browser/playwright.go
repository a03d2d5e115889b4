package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/config"
)

// actionTimeout bounds playwright's own actionability wait on clicks and
// typing; the page objects do their own waiting before acting.
const actionTimeout = 2 * time.Second

// PlaywrightLauncher opens sessions through playwright-go. Browsers are
// launched lazily and shared; every Open gets its own browser context.
type PlaywrightLauncher struct {
	pw       *playwright.Playwright
	cfg      *config.BrowserConfig
	logger   *logrus.Logger
	mu       sync.Mutex
	browsers map[string]playwright.Browser
}

// NewPlaywrightLauncher starts the playwright driver
func NewPlaywrightLauncher(cfg *config.BrowserConfig, logger *logrus.Logger) (*PlaywrightLauncher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &PlaywrightLauncher{
		pw:       pw,
		cfg:      cfg,
		logger:   logger,
		browsers: make(map[string]playwright.Browser),
	}, nil
}

// Open implements Launcher
func (l *PlaywrightLauncher) Open(ctx context.Context, browserName string) (Driver, error) {
	b, err := l.browser(browserName)
	if err != nil {
		return nil, err
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport:          &playwright.Size{Width: 1366, Height: 900},
		Locale:            playwright.String("ru-RU"),
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(float64(l.cfg.Timeout.Milliseconds()))

	l.logger.WithField("browser", browserName).Debug("playwright session opened")
	return &playwrightDriver{name: browserName, context: bctx, page: page}, nil
}

func (l *PlaywrightLauncher) browser(name string) (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.browsers[name]; ok && b.IsConnected() {
		return b, nil
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		SlowMo:   playwright.Float(float64(l.cfg.SlowMo.Milliseconds())),
	}
	if l.cfg.ExecPath != "" {
		opts.ExecutablePath = playwright.String(l.cfg.ExecPath)
	}

	var bt playwright.BrowserType
	switch name {
	case "chrome", "chromium":
		bt = l.pw.Chromium
	case "edge":
		bt = l.pw.Chromium
		opts.Channel = playwright.String("msedge")
	case "firefox":
		bt = l.pw.Firefox
	case "webkit":
		bt = l.pw.WebKit
	default:
		return nil, fmt.Errorf("%w: playwright cannot launch %q", ErrUnsupported, name)
	}

	b, err := bt.Launch(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", name, err)
	}
	l.browsers[name] = b
	return b, nil
}

// Close implements Launcher
func (l *PlaywrightLauncher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for name, b := range l.browsers {
		if err := b.Close(); err != nil {
			l.logger.WithError(err).WithField("browser", name).Warn("failed to close browser")
		}
	}
	l.browsers = map[string]playwright.Browser{}
	return l.pw.Stop()
}

type playwrightDriver struct {
	name    string
	context playwright.BrowserContext
	page    playwright.Page
}

func (d *playwrightDriver) Name() string { return d.name }

func (d *playwrightDriver) Navigate(_ context.Context, url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, wrapPlaywright(err))
	}
	return nil
}

func (d *playwrightDriver) Reload(_ context.Context) error {
	_, err := d.page.Reload()
	return wrapPlaywright(err)
}

func (d *playwrightDriver) Back(_ context.Context) error {
	_, err := d.page.GoBack()
	return wrapPlaywright(err)
}

func (d *playwrightDriver) Title(_ context.Context) (string, error) {
	return d.page.Title()
}

func (d *playwrightDriver) CurrentURL(_ context.Context) (string, error) {
	return d.page.URL(), nil
}

func (d *playwrightDriver) Find(_ context.Context, loc Locator) ([]Element, error) {
	sel, err := playwrightSelector(loc)
	if err != nil {
		return nil, err
	}
	return collectLocators(d.page.Locator(sel))
}

func (d *playwrightDriver) Close() error {
	return d.context.Close()
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Text(_ context.Context) (string, error) {
	text, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return text, wrapPlaywright(err)
}

func (e *playwrightElement) Attribute(_ context.Context, name string) (string, error) {
	v, err := e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return v, wrapPlaywright(err)
}

func (e *playwrightElement) Click(_ context.Context) error {
	err := e.loc.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return wrapPlaywrightAction(err)
}

func (e *playwrightElement) Clear(_ context.Context) error {
	err := e.loc.Clear(playwright.LocatorClearOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return wrapPlaywrightAction(err)
}

func (e *playwrightElement) SendKeys(_ context.Context, text string) error {
	err := e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return wrapPlaywrightAction(err)
}

func (e *playwrightElement) ScrollIntoView(_ context.Context) error {
	err := e.loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: playwright.Float(float64(actionTimeout.Milliseconds()))})
	return wrapPlaywrightAction(err)
}

func (e *playwrightElement) IsDisplayed(_ context.Context) (bool, error) {
	v, err := e.loc.IsVisible()
	return v, wrapPlaywright(err)
}

func (e *playwrightElement) IsEnabled(_ context.Context) (bool, error) {
	v, err := e.loc.IsEnabled()
	return v, wrapPlaywright(err)
}

func (e *playwrightElement) Find(_ context.Context, loc Locator) ([]Element, error) {
	sel, err := playwrightSelector(loc.Relative())
	if err != nil {
		return nil, err
	}
	return collectLocators(e.loc.Locator(sel))
}

func collectLocators(loc playwright.Locator) ([]Element, error) {
	all, err := loc.All()
	if err != nil {
		return nil, wrapPlaywright(err)
	}
	out := make([]Element, 0, len(all))
	for _, l := range all {
		out = append(out, &playwrightElement{loc: l})
	}
	return out, nil
}

func playwrightSelector(loc Locator) (string, error) {
	if err := loc.Validate(); err != nil {
		return "", err
	}
	if loc.By == ByXPath || loc.By == ByLinkText {
		expr, _ := loc.XPathExpr()
		return "xpath=" + expr, nil
	}
	css, _ := loc.CSSSelector()
	return "css=" + css, nil
}

func wrapPlaywright(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if strings.Contains(err.Error(), "Unexpected token") || strings.Contains(err.Error(), "is not a valid selector") {
		return fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	return err
}

// wrapPlaywrightAction maps a timed-out actionability check to
// ErrNotInteractable, which is what the other backends report for the
// same situation.
func wrapPlaywrightAction(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrNotInteractable, err)
	}
	return wrapPlaywright(err)
}

// PlaywrightBrowsers maps configured browser names to the browser names
// the playwright installer understands, without duplicates
func PlaywrightBrowsers(names []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, name := range names {
		var install string
		switch name {
		case "chrome", "chromium":
			install = "chromium"
		case "edge":
			install = "msedge"
		case "firefox", "webkit":
			install = name
		default:
			return nil, fmt.Errorf("%w: playwright cannot install %q", ErrUnsupported, name)
		}
		if !seen[install] {
			seen[install] = true
			out = append(out, install)
		}
	}
	return out, nil
}
