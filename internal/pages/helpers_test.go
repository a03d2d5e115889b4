package pages

import (
	"context"
	"testing"
	"time"

	"github.com/skillbox-qa/intershop/internal/browser"
	"github.com/skillbox-qa/intershop/internal/browser/browsertest"
	"github.com/skillbox-qa/intershop/internal/logging"
)

const shopURL = "http://shop.test"

func init() {
	browser.PollInterval = 2 * time.Millisecond
}

// newSession returns a fake session for the shop at shopURL
func newSession() (*browsertest.Driver, *BasePage) {
	d := browsertest.NewDriver()
	return d, NewBasePage(d, shopURL, "Skillbox", 40*time.Millisecond, logging.Discard())
}

// serve registers page under path of the fake shop
func serve(d *browsertest.Driver, path string, page *browsertest.Page) {
	d.Serve(shopURL+path, page)
}

// open loads path in the fake session
func open(t *testing.T, base *BasePage, path string) {
	t.Helper()
	if err := base.Open(context.Background(), path); err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
}

// navigatesTo makes a click on el switch the fake session to path
func navigatesTo(d *browsertest.Driver, el *browsertest.Element, path string) *browsertest.Element {
	el.OnClick = func() { d.Go(shopURL + path) }
	return el
}

func current(t *testing.T, d *browsertest.Driver) string {
	t.Helper()
	u, _ := d.CurrentURL(context.Background())
	return u
}
