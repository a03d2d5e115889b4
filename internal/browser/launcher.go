package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/config"
)

// NewLauncher returns the launcher for cfg.Backend
func NewLauncher(cfg *config.BrowserConfig, logger *logrus.Logger) (Launcher, error) {
	switch cfg.Backend {
	case config.BackendPlaywright, "":
		return NewPlaywrightLauncher(cfg, logger)
	case config.BackendChromedp:
		return NewChromedpLauncher(cfg, logger), nil
	case config.BackendSelenium:
		return NewSeleniumLauncher(cfg, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnsupported, cfg.Backend)
	}
}
