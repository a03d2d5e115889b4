package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"github.com/skillbox-qa/intershop/internal/config"
)

// SeleniumLauncher opens sessions on a remote WebDriver endpoint
// (selenium grid, standalone chromedriver/geckodriver/msedgedriver).
type SeleniumLauncher struct {
	cfg    *config.BrowserConfig
	logger *logrus.Logger
}

// NewSeleniumLauncher creates a launcher for cfg.SeleniumURL
func NewSeleniumLauncher(cfg *config.BrowserConfig, logger *logrus.Logger) *SeleniumLauncher {
	return &SeleniumLauncher{cfg: cfg, logger: logger}
}

// Open implements Launcher
func (l *SeleniumLauncher) Open(_ context.Context, browserName string) (Driver, error) {
	caps, err := l.capabilities(browserName)
	if err != nil {
		return nil, err
	}

	wd, err := selenium.NewRemote(caps, l.cfg.SeleniumURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open WebDriver session for %s: %w", browserName, err)
	}
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		wd.Quit()
		return nil, fmt.Errorf("failed to reset implicit wait: %w", err)
	}
	if err := wd.ResizeWindow("", 1366, 900); err != nil {
		l.logger.WithError(err).Debug("window resize not supported")
	}

	l.logger.WithField("browser", browserName).Debug("selenium session opened")
	return &seleniumDriver{name: browserName, wd: wd}, nil
}

func (l *SeleniumLauncher) capabilities(name string) (selenium.Capabilities, error) {
	switch name {
	case "chrome", "chromium":
		caps := selenium.Capabilities{"browserName": "chrome"}
		args := []string{"--lang=ru-RU", "--window-size=1366,900"}
		if l.cfg.Headless {
			args = append(args, "--headless=new")
		}
		caps.AddChrome(chrome.Capabilities{Args: args, Path: l.cfg.ExecPath})
		return caps, nil
	case "firefox":
		caps := selenium.Capabilities{"browserName": "firefox"}
		var args []string
		if l.cfg.Headless {
			args = append(args, "-headless")
		}
		caps.AddFirefox(firefox.Capabilities{Args: args, Binary: l.cfg.ExecPath})
		return caps, nil
	case "edge":
		args := []string{"--lang=ru-RU"}
		if l.cfg.Headless {
			args = append(args, "--headless=new")
		}
		return selenium.Capabilities{
			"browserName":    "MicrosoftEdge",
			"ms:edgeOptions": map[string]interface{}{"args": args},
		}, nil
	default:
		return nil, fmt.Errorf("%w: selenium cannot drive %q", ErrUnsupported, name)
	}
}

// Close implements Launcher. Sessions are owned by their drivers.
func (l *SeleniumLauncher) Close() error { return nil }

type seleniumDriver struct {
	name string
	wd   selenium.WebDriver
}

func (d *seleniumDriver) Name() string { return d.name }

func (d *seleniumDriver) Navigate(_ context.Context, url string) error {
	if err := d.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, wrapSelenium(err))
	}
	return nil
}

func (d *seleniumDriver) Reload(_ context.Context) error { return wrapSelenium(d.wd.Refresh()) }

func (d *seleniumDriver) Back(_ context.Context) error { return wrapSelenium(d.wd.Back()) }

func (d *seleniumDriver) Title(_ context.Context) (string, error) {
	t, err := d.wd.Title()
	return t, wrapSelenium(err)
}

func (d *seleniumDriver) CurrentURL(_ context.Context) (string, error) {
	u, err := d.wd.CurrentURL()
	return u, wrapSelenium(err)
}

func (d *seleniumDriver) Find(_ context.Context, loc Locator) ([]Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	// W3C drivers only know css and xpath; Relative yields one of the two.
	rel := loc.Relative()
	found, err := d.wd.FindElements(string(rel.By), rel.Value)
	if err != nil {
		return nil, wrapSelenium(err)
	}
	return d.wrap(found), nil
}

func (d *seleniumDriver) Close() error { return d.wd.Quit() }

func (d *seleniumDriver) wrap(found []selenium.WebElement) []Element {
	out := make([]Element, 0, len(found))
	for _, we := range found {
		out = append(out, &seleniumElement{driver: d, we: we})
	}
	return out
}

type seleniumElement struct {
	driver *seleniumDriver
	we     selenium.WebElement
}

func (e *seleniumElement) Text(_ context.Context) (string, error) {
	t, err := e.we.Text()
	return t, wrapSelenium(err)
}

func (e *seleniumElement) Attribute(_ context.Context, name string) (string, error) {
	v, err := e.we.GetAttribute(name)
	return v, wrapSelenium(err)
}

func (e *seleniumElement) Click(_ context.Context) error { return wrapSelenium(e.we.Click()) }

func (e *seleniumElement) Clear(_ context.Context) error { return wrapSelenium(e.we.Clear()) }

func (e *seleniumElement) SendKeys(_ context.Context, text string) error {
	return wrapSelenium(e.we.SendKeys(text))
}

func (e *seleniumElement) ScrollIntoView(_ context.Context) error {
	_, err := e.driver.wd.ExecuteScript("arguments[0].scrollIntoView({block: 'center'});", []interface{}{e.we})
	return wrapSelenium(err)
}

func (e *seleniumElement) IsDisplayed(_ context.Context) (bool, error) {
	v, err := e.we.IsDisplayed()
	return v, wrapSelenium(err)
}

func (e *seleniumElement) IsEnabled(_ context.Context) (bool, error) {
	v, err := e.we.IsEnabled()
	return v, wrapSelenium(err)
}

func (e *seleniumElement) Find(_ context.Context, loc Locator) ([]Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	rel := loc.Relative()
	found, err := e.we.FindElements(string(rel.By), rel.Value)
	if err != nil {
		return nil, wrapSelenium(err)
	}
	return e.driver.wrap(found), nil
}

func wrapSelenium(err error) error {
	if err == nil {
		return nil
	}
	var serr *selenium.Error
	if !errors.As(err, &serr) {
		return err
	}
	switch serr.Err {
	case "element not interactable", "element click intercepted":
		return fmt.Errorf("%w: %s", ErrNotInteractable, serr.Message)
	case "invalid selector":
		return fmt.Errorf("%w: %s", ErrInvalidSelector, serr.Message)
	case "no such element", "stale element reference":
		return fmt.Errorf("%w: %s", ErrNoSuchElement, serr.Message)
	case "timeout", "script timeout":
		return fmt.Errorf("%w: %s", ErrTimeout, serr.Message)
	default:
		return err
	}
}
