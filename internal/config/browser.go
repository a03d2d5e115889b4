package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Browser backends
const (
	BackendPlaywright = "playwright"
	BackendChromedp   = "chromedp"
	BackendSelenium   = "selenium"
)

// BrowserConfig holds configuration for the browser sessions driving the suite
type BrowserConfig struct {
	Backend     string
	Browsers    []string
	Headless    bool
	SlowMo      time.Duration
	Timeout     time.Duration
	BaseURL     string
	SeleniumURL string
	ExecPath    string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Backend:     strings.ToLower(getenv("E2E_BACKEND")),
		Browsers:    splitList(getenv("E2E_BROWSERS")),
		Headless:    true,
		Timeout:     10 * time.Second,
		BaseURL:     strings.TrimRight(getenv("E2E_BASE_URL"), "/"),
		SeleniumURL: getenv("E2E_SELENIUM_URL"),
		ExecPath:    getenv("E2E_BROWSER_PATH"),
	}

	if config.Backend == "" {
		config.Backend = BackendPlaywright
	}
	switch config.Backend {
	case BackendPlaywright, BackendChromedp, BackendSelenium:
	default:
		return nil, fmt.Errorf("E2E_BACKEND must be one of %s, %s, %s: got %q",
			BackendPlaywright, BackendChromedp, BackendSelenium, config.Backend)
	}

	if len(config.Browsers) == 0 {
		config.Browsers = []string{"chrome"}
	}

	if v := getenv("E2E_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("E2E_HEADLESS: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("E2E_SLOWMO"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("E2E_SLOWMO: %w", err)
		}
		config.SlowMo = d
	}

	if v := getenv("E2E_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("E2E_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("E2E_TIMEOUT must be positive")
		}
		config.Timeout = d
	}

	if config.Backend == BackendSelenium && config.SeleniumURL == "" {
		config.SeleniumURL = "http://localhost:4444/wd/hub"
	}

	return config, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
