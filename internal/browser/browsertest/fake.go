// Package browsertest provides an in-memory browser.Driver for exercising
// page objects without a real browser.
package browsertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/skillbox-qa/intershop/internal/browser"
)

// Page is a static document served by the fake driver
type Page struct {
	Title    string
	Elements map[browser.Locator][]*Element
}

// NewPage creates a page with the given title
func NewPage(title string) *Page {
	return &Page{Title: title, Elements: make(map[browser.Locator][]*Element)}
}

// Add registers elements under loc and returns the page for chaining
func (p *Page) Add(loc browser.Locator, els ...*Element) *Page {
	p.Elements[loc] = append(p.Elements[loc], els...)
	return p
}

// Element is a fake DOM element
type Element struct {
	TextValue string
	Attrs     map[string]string
	Hidden    bool
	Disabled  bool
	ClickErr  error
	OnClick   func()
	Children  map[browser.Locator][]*Element

	mu       sync.Mutex
	Value    string
	Clicks   int
	Scrolled int
}

// NewElement creates a visible, enabled element with the given text
func NewElement(text string) *Element {
	return &Element{TextValue: text, Attrs: map[string]string{}, Children: map[browser.Locator][]*Element{}}
}

// WithChild registers a child element and returns the parent
func (e *Element) WithChild(loc browser.Locator, child *Element) *Element {
	e.Children[loc] = append(e.Children[loc], child)
	return e
}

// WithAttr sets an attribute and returns the element
func (e *Element) WithAttr(name, value string) *Element {
	e.Attrs[name] = value
	return e
}

// Text implements browser.Element
func (e *Element) Text(context.Context) (string, error) { return e.TextValue, nil }

// Attribute implements browser.Element
func (e *Element) Attribute(_ context.Context, name string) (string, error) {
	return e.Attrs[name], nil
}

// Click implements browser.Element
func (e *Element) Click(context.Context) error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	if e.Hidden {
		return fmt.Errorf("%w: element is hidden", browser.ErrNotInteractable)
	}
	e.mu.Lock()
	e.Clicks++
	e.mu.Unlock()
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

// Clear implements browser.Element
func (e *Element) Clear(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Value = ""
	return nil
}

// SendKeys implements browser.Element
func (e *Element) SendKeys(_ context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Value += text
	return nil
}

// ScrollIntoView implements browser.Element
func (e *Element) ScrollIntoView(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Scrolled++
	return nil
}

// IsDisplayed implements browser.Element
func (e *Element) IsDisplayed(context.Context) (bool, error) { return !e.Hidden, nil }

// IsEnabled implements browser.Element
func (e *Element) IsEnabled(context.Context) (bool, error) { return !e.Disabled, nil }

// Find implements browser.Element
func (e *Element) Find(_ context.Context, loc browser.Locator) ([]browser.Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return lookup(e.Children, loc), nil
}

// Driver is a fake browser session. Pages are keyed by URL.
type Driver struct {
	BrowserName string
	Pages       map[string]*Page
	FindErr     map[browser.Locator]error

	mu          sync.Mutex
	current     string
	history     []string
	Navigations []string
	Reloads     int
	Closed      bool
}

// NewDriver creates a fake driver
func NewDriver() *Driver {
	return &Driver{
		BrowserName: "fake",
		Pages:       make(map[string]*Page),
		FindErr:     make(map[browser.Locator]error),
	}
}

// Serve registers page under url and returns it
func (d *Driver) Serve(url string, page *Page) *Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Pages[url] = page
	return page
}

// Go switches to url without recording a navigation; useful in OnClick hooks
func (d *Driver) Go(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != "" {
		d.history = append(d.history, d.current)
	}
	d.current = url
}

// Name implements browser.Driver
func (d *Driver) Name() string { return d.BrowserName }

// Navigate implements browser.Driver
func (d *Driver) Navigate(_ context.Context, url string) error {
	d.mu.Lock()
	d.Navigations = append(d.Navigations, url)
	d.mu.Unlock()
	d.Go(url)
	return nil
}

// Reload implements browser.Driver
func (d *Driver) Reload(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Reloads++
	return nil
}

// Back implements browser.Driver
func (d *Driver) Back(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.history) == 0 {
		return fmt.Errorf("no history")
	}
	d.current = d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	return nil
}

// Title implements browser.Driver
func (d *Driver) Title(context.Context) (string, error) {
	if p := d.page(); p != nil {
		return p.Title, nil
	}
	return "", nil
}

// CurrentURL implements browser.Driver
func (d *Driver) CurrentURL(context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, nil
}

// Find implements browser.Driver
func (d *Driver) Find(_ context.Context, loc browser.Locator) ([]browser.Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	err := d.FindErr[loc]
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}
	p := d.page()
	if p == nil {
		return nil, nil
	}
	return lookup(p.Elements, loc), nil
}

// Close implements browser.Driver
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

func (d *Driver) page() *Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Pages[d.current]
}

// lookup matches loc either as registered or in its relative form, since
// scoped lookups arrive rewritten by Locator.Relative.
func lookup(m map[browser.Locator][]*Element, loc browser.Locator) []browser.Element {
	var out []browser.Element
	for k, els := range m {
		if k != loc && k.Relative() != loc {
			continue
		}
		for _, el := range els {
			out = append(out, el)
		}
	}
	return out
}

var (
	_ browser.Driver  = (*Driver)(nil)
	_ browser.Element = (*Element)(nil)
)
