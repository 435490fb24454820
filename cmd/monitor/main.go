// Package main is the entry point for vitalis-monitor.
// It serves host telemetry over HTTP, shows it in a terminal dashboard,
// or prints a single snapshot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/collector"
	"github.com/Guliveer/vitalis/monitor/internal/config"
	"github.com/Guliveer/vitalis/monitor/internal/provider"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vitalis-monitor: %v\n", err)
		os.Exit(1)
	}
}

// env is the state shared by all commands once the config is loaded.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp() *cli.App {
	e := &env{logger: zap.NewNop()}

	return &cli.App{
		Name:    "vitalis-monitor",
		Usage:   "inspect host telemetry from the terminal or serve it over HTTP",
		Version: appVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file (default: search standard locations)",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "base URL of a remote provider (default: collect locally)",
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "address the provider server listens on",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: e.loadConfig,
		After: func(c *cli.Context) error {
			e.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			e.cmdServe(),
			e.cmdWatch(),
			e.cmdSnapshot(),
			e.cmdDetail(),
			e.cmdInstall(),
			e.cmdUninstall(),
		},
		CommandNotFound: func(c *cli.Context, command string) {
			fmt.Fprintf(c.App.ErrWriter, "unknown command %q\n\n", command)
			cli.ShowAppHelpAndExit(c, 1)
		},
	}
}

// loadConfig loads the layered configuration and validates it.
func (e *env) loadConfig(c *cli.Context) error {
	overrides := config.CLIOverrides{
		ProviderURL: c.String("provider"),
		Listen:      c.String("listen"),
		LogLevel:    c.String("log-level"),
	}

	var (
		cfg *config.Config
		err error
	)
	if c.IsSet("config") {
		cfg, err = config.LoadLayered(overrides, embeddedConfig, c.String("config"))
	} else {
		cfg, err = config.LoadLayered(overrides, embeddedConfig)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	e.cfg = cfg
	return nil
}

// newProvider returns the remote client when a provider URL is configured,
// the in-process collector otherwise. Both reject invalid snapshots.
func (e *env) newProvider() provider.Provider {
	if e.cfg.Provider.URL != "" {
		e.logger.Debug("Using remote provider", zap.String("url", e.cfg.Provider.URL))
		return provider.Validated(provider.NewClient(e.cfg.Provider.URL, e.cfg.Provider.Timeout.Duration, e.logger))
	}
	e.logger.Debug("Using local collector")
	return provider.Validated(collector.NewProvider(e.logger))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func (e *env) signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			e.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// appVersion prefers the -ldflags version and falls back to build info.
func appVersion() string {
	if version != "dev" {
		return version
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return version
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return version
}
