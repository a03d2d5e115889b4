package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/skillbox-qa/intershop/internal/browser"
	internalcli "github.com/skillbox-qa/intershop/internal/cli"
	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/journeys"
	"github.com/skillbox-qa/intershop/internal/logging"
)

var version = "0.1.0"

// ServeCommand returns the serve command
func ServeCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the practice storefront",
		Action: func(c *cli.Context) error {
			serverConfig := config.LoadServerConfig(os.Getenv)
			storeConfig, err := config.LoadStoreConfig(os.Getenv)
			if err != nil {
				return err
			}

			storefront, err := internalcli.BuildStorefront(c.Context, serverConfig, storeConfig, logger)
			if err != nil {
				return err
			}
			defer storefront.Close()

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: serverConfig,
				Handler:      storefront.Handler,
				Logger:       logger,
			})
		},
	}
}

// InstallCommand returns the install command
func InstallCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the playwright driver and the configured browsers",
		Action: func(c *cli.Context) error {
			browserConfig, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}
			return internalcli.RunInstall(browserConfig.Browsers, logger)
		},
	}
}

var journeyFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:  "journey",
		Usage: "journey to run (repeatable); all when omitted",
	},
	&cli.StringFlag{
		Name:    "suite",
		Usage:   "suite data YAML file",
		EnvVars: []string{"E2E_SUITE_FILE"},
	},
}

// journeyDependencies builds the runner for the run and monitor commands.
// The returned close function releases the browser backend.
func journeyDependencies(c *cli.Context, logger *logrus.Logger) (internalcli.JourneyDependencies, func(), error) {
	var deps internalcli.JourneyDependencies

	browserConfig, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return deps, nil, err
	}
	if browserConfig.BaseURL == "" {
		return deps, nil, fmt.Errorf("E2E_BASE_URL is required")
	}
	data, err := config.LoadSuiteData(c.String("suite"))
	if err != nil {
		return deps, nil, err
	}
	selected, err := journeys.Select(c.StringSlice("journey"))
	if err != nil {
		return deps, nil, err
	}

	launcher, err := browser.NewLauncher(browserConfig, logger)
	if err != nil {
		return deps, nil, err
	}
	closeLauncher := func() {
		if err := launcher.Close(); err != nil {
			logger.WithError(err).Warn("failed to close browser backend")
		}
	}

	deps.Runner = journeys.NewRunner(launcher, browserConfig, data, logger)
	deps.Journeys = selected
	deps.Logger = logger
	return deps, closeLauncher, nil
}

// RunCommand returns the run command
func RunCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the user journeys once against E2E_BASE_URL",
		Flags: journeyFlags,
		Action: func(c *cli.Context) error {
			deps, closeLauncher, err := journeyDependencies(c, logger)
			if err != nil {
				return err
			}
			defer closeLauncher()

			return internalcli.RunJourneys(c.Context, deps)
		},
	}
}

// MonitorCommand returns the monitor command
func MonitorCommand(logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Run the user journeys on a cron schedule until interrupted",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "cron expression",
				Value:   internalcli.DefaultSchedule,
				EnvVars: []string{"MONITOR_SCHEDULE"},
			},
		}, journeyFlags...),
		Action: func(c *cli.Context) error {
			deps, closeLauncher, err := journeyDependencies(c, logger)
			if err != nil {
				return err
			}
			defer closeLauncher()

			return internalcli.RunMonitor(c.Context, deps, c.String("schedule"), nil)
		},
	}
}

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()
	logger := logging.FromEnv(os.Getenv)
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "intershop",
		Usage:   "Browser journeys and practice storefront for the intershop shop",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(logger),
			InstallCommand(logger),
			RunCommand(logger),
			MonitorCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
