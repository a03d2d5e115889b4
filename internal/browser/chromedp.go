package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/config"
)

// ChromedpLauncher drives Chromium over the DevTools protocol. Every Open
// gets a new tab in a shared browser process. Each tab lives in its own
// browser context so sessions do not share cookies.
type ChromedpLauncher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         *config.BrowserConfig
	logger      *logrus.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromedpLauncher prepares the exec allocator; the browser process is
// started with the first tab.
func NewChromedpLauncher(cfg *config.BrowserConfig, logger *logrus.Logger) *ChromedpLauncher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("lang", "ru-RU"),
		chromedp.WindowSize(1366, 900),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromedpLauncher{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		cfg:         cfg,
		logger:      logger,
	}
}

// Open implements Launcher
func (l *ChromedpLauncher) Open(ctx context.Context, browserName string) (Driver, error) {
	switch browserName {
	case "chrome", "chromium", "edge":
	default:
		return nil, fmt.Errorf("%w: chromedp cannot drive %q", ErrUnsupported, browserName)
	}

	browserCtx, err := l.browser()
	if err != nil {
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(browserCtx, chromedp.WithNewBrowserContext())
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}

	l.logger.WithField("browser", browserName).Debug("chromedp tab opened")
	return &chromedpDriver{name: browserName, tab: tabCtx, cancel: cancel, slowMo: l.cfg.SlowMo}, nil
}

// browser starts the shared browser process on first use
func (l *ChromedpLauncher) browser() (context.Context, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.browserCtx != nil {
		return l.browserCtx, nil
	}

	ctx, cancel := chromedp.NewContext(l.allocCtx, chromedp.WithErrorf(l.logger.Errorf))
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start chromium: %w", err)
	}
	l.browserCtx, l.browserCancel = ctx, cancel
	l.logger.Debug("chromium started")
	return ctx, nil
}

// Close implements Launcher
func (l *ChromedpLauncher) Close() error {
	l.mu.Lock()
	if l.browserCancel != nil {
		l.browserCancel()
		l.browserCtx, l.browserCancel = nil, nil
	}
	l.mu.Unlock()
	l.allocCancel()
	return nil
}

type chromedpDriver struct {
	name   string
	tab    context.Context
	cancel context.CancelFunc
	slowMo time.Duration
}

// run executes actions in the tab while honouring the caller's deadline.
func (d *chromedpDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	tab := d.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		tab, cancel = context.WithDeadline(tab, deadline)
		defer cancel()
	}
	if d.slowMo > 0 {
		actions = append(actions, chromedp.Sleep(d.slowMo))
	}
	return wrapChromedp(chromedp.Run(tab, actions...))
}

func (d *chromedpDriver) Name() string { return d.name }

func (d *chromedpDriver) Navigate(ctx context.Context, url string) error {
	if err := d.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (d *chromedpDriver) Reload(ctx context.Context) error {
	return d.run(ctx, chromedp.Reload())
}

func (d *chromedpDriver) Back(ctx context.Context) error {
	return d.run(ctx, chromedp.NavigateBack())
}

func (d *chromedpDriver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.run(ctx, chromedp.Title(&title))
	return title, err
}

func (d *chromedpDriver) CurrentURL(ctx context.Context) (string, error) {
	var url string
	err := d.run(ctx, chromedp.Location(&url))
	return url, err
}

func (d *chromedpDriver) Find(ctx context.Context, loc Locator) ([]Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var nodes []*cdp.Node
	var query chromedp.Action
	if css, ok := loc.CSSSelector(); ok {
		query = chromedp.Nodes(css, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))
	} else {
		expr, _ := loc.XPathExpr()
		query = chromedp.Nodes(expr, &nodes, chromedp.BySearch, chromedp.AtLeast(0))
	}
	if err := d.run(ctx, query); err != nil {
		return nil, err
	}
	return d.wrapNodes(nodes), nil
}

func (d *chromedpDriver) Close() error {
	d.cancel()
	return nil
}

func (d *chromedpDriver) wrapNodes(nodes []*cdp.Node) []Element {
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &chromedpElement{driver: d, node: n})
	}
	return out
}

type chromedpElement struct {
	driver *chromedpDriver
	node   *cdp.Node
}

func (e *chromedpElement) ids() []cdp.NodeID { return []cdp.NodeID{e.node.NodeID} }

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.driver.run(ctx, chromedp.JavascriptAttribute(e.ids(), "innerText", &text, chromedp.ByNodeID))
	return text, err
}

func (e *chromedpElement) Attribute(ctx context.Context, name string) (string, error) {
	var (
		value string
		ok    bool
	)
	err := e.driver.run(ctx, chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID))
	return value, err
}

func (e *chromedpElement) Click(ctx context.Context) error {
	shown, err := e.IsDisplayed(ctx)
	if err != nil {
		return err
	}
	if !shown {
		return fmt.Errorf("%w: node %d has no layout box", ErrNotInteractable, e.node.NodeID)
	}
	return e.driver.run(ctx, chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) Clear(ctx context.Context) error {
	return e.driver.run(ctx, chromedp.Clear(e.ids(), chromedp.ByNodeID))
}

func (e *chromedpElement) SendKeys(ctx context.Context, text string) error {
	return e.driver.run(ctx, chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID))
}

func (e *chromedpElement) ScrollIntoView(ctx context.Context) error {
	return e.driver.run(ctx, chromedp.ScrollIntoView(e.ids(), chromedp.ByNodeID))
}

func (e *chromedpElement) IsDisplayed(ctx context.Context) (bool, error) {
	visible := true
	err := e.driver.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if _, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(ctx); err != nil {
			visible = false
		}
		return nil
	}))
	return visible, err
}

func (e *chromedpElement) IsEnabled(ctx context.Context) (bool, error) {
	var (
		value    string
		disabled bool
	)
	err := e.driver.run(ctx, chromedp.AttributeValue(e.ids(), "disabled", &value, &disabled, chromedp.ByNodeID))
	return !disabled, err
}

func (e *chromedpElement) Find(ctx context.Context, loc Locator) ([]Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	css, ok := loc.CSSSelector()
	if !ok {
		return nil, fmt.Errorf("%w: chromedp child lookups need a CSS locator, got %s", ErrInvalidSelector, loc)
	}

	var nodes []*cdp.Node
	err := e.driver.run(ctx, chromedp.Nodes(css, &nodes, chromedp.ByQueryAll, chromedp.FromNode(e.node), chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	return e.driver.wrapNodes(nodes), nil
}

func wrapChromedp(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if strings.Contains(err.Error(), "could not compute box model") || strings.Contains(err.Error(), "node is not visible") {
		return fmt.Errorf("%w: %v", ErrNotInteractable, err)
	}
	return err
}
