package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/playwright-community/playwright-go"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/browser"
	"github.com/skillbox-qa/intershop/internal/journeys"
)

// ErrJourneysFailed is returned by RunJourneys when at least one journey failed
var ErrJourneysFailed = errors.New("journeys failed")

// DefaultSchedule runs the monitor every fifteen minutes
const DefaultSchedule = "*/15 * * * *"

// JourneyRunner runs journeys and reports their results
type JourneyRunner interface {
	Run(ctx context.Context, js []journeys.Journey) []journeys.Result
}

// JourneyDependencies holds what the run and monitor commands need
type JourneyDependencies struct {
	Runner   JourneyRunner
	Journeys []journeys.Journey
	Logger   *logrus.Logger
}

// RunJourneys runs every journey once and fails if any of them failed
func RunJourneys(ctx context.Context, deps JourneyDependencies) error {
	results := deps.Runner.Run(ctx, deps.Journeys)
	failed := journeys.Failed(results)

	deps.Logger.WithFields(logrus.Fields{
		"total":  len(results),
		"failed": len(failed),
	}).Info("journeys finished")

	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrJourneysFailed, len(failed), len(results))
	}
	return nil
}

// RunMonitor runs the journeys on schedule until a signal arrives on
// shutdown. A nil shutdown channel is registered for SIGINT/SIGTERM. Runs
// that are still going when the next tick fires are not overlapped.
func RunMonitor(ctx context.Context, deps JourneyDependencies, schedule string, shutdown chan os.Signal) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		if err := RunJourneys(ctx, deps); err != nil {
			deps.Logger.WithError(err).Error("scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	deps.Logger.WithField("schedule", schedule).Info("monitor started")

	select {
	case sig := <-shutdown:
		deps.Logger.WithField("signal", sig.String()).Info("stopping monitor")
	case <-ctx.Done():
	}

	cancel()
	<-c.Stop().Done()
	deps.Logger.Info("monitor stopped")
	return nil
}

// installPlaywright is replaced in tests
var installPlaywright = playwright.Install

// RunInstall downloads the playwright driver and the browsers in names
func RunInstall(names []string, logger *logrus.Logger) error {
	browsers, err := browser.PlaywrightBrowsers(names)
	if err != nil {
		return err
	}

	logger.WithField("browsers", browsers).Info("installing playwright")
	if err := installPlaywright(&playwright.RunOptions{Browsers: browsers}); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}
