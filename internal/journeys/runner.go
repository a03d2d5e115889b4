package journeys

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/browser"
	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/pages"
)

// Result is the outcome of one journey in one browser
type Result struct {
	Journey  string
	Browser  string
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Passed reports whether the journey finished without error
func (r Result) Passed() bool { return r.Err == nil }

// Runner opens a fresh browser session for every journey and browser
type Runner struct {
	Launcher browser.Launcher
	Browsers []string
	BaseURL  string
	Timeout  time.Duration
	Data     *config.SuiteData
	Logger   *logrus.Logger
}

// NewRunner creates a runner for the browsers and shop described by cfg
func NewRunner(launcher browser.Launcher, cfg *config.BrowserConfig, data *config.SuiteData, logger *logrus.Logger) *Runner {
	return &Runner{
		Launcher: launcher,
		Browsers: cfg.Browsers,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.Timeout,
		Data:     data,
		Logger:   logger,
	}
}

// Run executes every journey in every browser. Browsers run concurrently,
// journeys within a browser one after another. Results are ordered by
// browser, then journey.
func (r *Runner) Run(ctx context.Context, js []Journey) []Result {
	results := make([]Result, len(r.Browsers)*len(js))

	var wg sync.WaitGroup
	for b, name := range r.Browsers {
		wg.Add(1)
		go func(b int, name string) {
			defer wg.Done()
			for j, journey := range js {
				results[b*len(js)+j] = r.runOne(ctx, journey, name)
			}
		}(b, name)
	}
	wg.Wait()

	return results
}

func (r *Runner) runOne(ctx context.Context, j Journey, browserName string) Result {
	res := Result{Journey: j.Name, Browser: browserName, Started: time.Now()}
	logger := r.Logger.WithFields(logrus.Fields{
		"journey": j.Name,
		"browser": browserName,
	})

	res.Err = r.session(ctx, j, browserName)
	res.Duration = time.Since(res.Started)

	if res.Err != nil {
		logger.WithError(res.Err).WithField("duration", res.Duration).Error("journey failed")
	} else {
		logger.WithField("duration", res.Duration).Info("journey passed")
	}
	return res
}

func (r *Runner) session(ctx context.Context, j Journey, browserName string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := r.Launcher.Open(ctx, browserName)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", browserName, err)
	}
	defer func() {
		if cerr := driver.Close(); cerr != nil {
			r.Logger.WithError(cerr).WithField("browser", browserName).Warn("failed to close session")
		}
	}()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("journey %s panicked: %v", j.Name, p)
		}
	}()

	s := &Session{
		BasePage: pages.NewBasePage(driver, r.BaseURL, r.Data.SiteName, r.Timeout, r.Logger),
		Data:     r.Data,
	}
	return j.Run(ctx, s)
}

// Failed returns the results that did not pass
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}
