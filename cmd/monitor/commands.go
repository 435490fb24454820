package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/provider"
	"github.com/Guliveer/vitalis/monitor/internal/server"
	"github.com/Guliveer/vitalis/monitor/internal/service"
	"github.com/Guliveer/vitalis/monitor/internal/setup"
	"github.com/Guliveer/vitalis/monitor/internal/tui"
)

func (e *env) cmdServe() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve snapshots over HTTP (also runs as a Windows service)",
		Action: func(c *cli.Context) error {
			e.logger = initLogger(e.cfg, os.Stdout)
			e.logger.Info("Starting vitalis-monitor provider",
				zap.String("version", version),
				zap.String("listen", e.cfg.Server.Listen))

			srv := server.New(e.newProvider(), e.logger, server.Options{
				StreamInterval: e.cfg.Views.Memory.Duration,
				Timeout:        e.cfg.Provider.Timeout.Duration,
			})

			var runErr error
			run := func(ctx context.Context) {
				if err := srv.Serve(ctx, e.cfg.Server.Listen); err != nil {
					e.logger.Error("Server failed", zap.Error(err))
					runErr = err
				}
			}

			if service.IsWindowsService() {
				e.logger.Info("Running as Windows service")
				if err := service.New(e.logger, run).Run(); err != nil {
					return fmt.Errorf("service failed: %w", err)
				}
				return runErr
			}

			ctx, cancel := e.signalContext(c.Context)
			defer cancel()
			run(ctx)
			e.logger.Info("Provider stopped")
			return runErr
		},
	}
}

func (e *env) cmdWatch() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "open the interactive dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "view",
				Usage: "initial view: device, network or storage",
				Value: "device",
			},
		},
		Action: func(c *cli.Context) error {
			tab, err := parseTab(c.String("view"))
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("watch needs an interactive terminal (use snapshot instead)")
			}

			e.logger = initLogger(e.cfg, nil)
			model := tui.NewModel(e.watchOptions(e.newProvider(), tab))

			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(c.Context)).Run()
			if m, ok := final.(tui.Model); ok {
				m.Close()
			}
			return err
		},
	}
}

// watchOptions maps the configured view cadences and provider timeout onto
// the dashboard.
func (e *env) watchOptions(p provider.Provider, tab tui.Tab) tui.Options {
	return tui.Options{
		Fetch: p.GetSystemStats,
		Intervals: map[tui.Tab]time.Duration{
			tui.TabDevice:  e.cfg.Views.Memory.Duration,
			tui.TabNetwork: e.cfg.Views.Network.Duration,
			tui.TabStorage: e.cfg.Views.Storage.Duration,
		},
		Timeout: e.cfg.Provider.Timeout.Duration,
		Logger:  e.logger,
		Tab:     tab,
	}
}

func (e *env) cmdSnapshot() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "fetch one snapshot and print it",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the raw snapshot as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			e.logger = initLogger(e.cfg, os.Stderr)

			ctx, cancel := context.WithTimeout(c.Context, e.cfg.Provider.Timeout.Duration)
			defer cancel()

			snap, err := e.newProvider().GetSystemStats(ctx)
			if err != nil {
				return fmt.Errorf("fetch snapshot: %w", err)
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			writeDashboard(c.App.Writer, snap)
			return nil
		},
	}
}

func (e *env) cmdDetail() *cli.Command {
	return &cli.Command{
		Name:      "detail",
		Usage:     "print the detail rows of one category",
		ArgsUsage: "<os|cpu|ram|gpu>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print rows as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			key, trailingJSON := detailArgs(c.Args().Slice())
			category := detail.ParseCategory(key)
			if category == detail.None {
				return fmt.Errorf("unknown category %q (want os, cpu, ram or gpu)", key)
			}
			asJSON := c.Bool("json") || trailingJSON

			e.logger = initLogger(e.cfg, os.Stderr)

			ctx, cancel := context.WithTimeout(c.Context, e.cfg.Provider.Timeout.Duration)
			defer cancel()

			snap, err := e.newProvider().GetSystemStats(ctx)
			if err != nil {
				return fmt.Errorf("fetch snapshot: %w", err)
			}

			rows := detail.Project(snap, category)
			if asJSON {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			writeDetail(c.App.Writer, category, rows)
			return nil
		},
	}
}

func (e *env) cmdInstall() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "install the provider as a background service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "installation mode: system or user (prompted when empty)",
			},
		},
		Action: func(c *cli.Context) error {
			inst := setup.NewInstaller(appVersion(), os.Stdin, c.App.Writer)
			return inst.Install(setup.Options{
				Mode:        c.String("mode"),
				Listen:      c.String("listen"),
				ProviderURL: c.String("provider"),
			})
		},
	}
}

func (e *env) cmdUninstall() *cli.Command {
	return &cli.Command{
		Name:  "uninstall",
		Usage: "remove the background service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "installation mode: system or user (prompted when empty)",
			},
			&cli.BoolFlag{
				Name:  "purge",
				Usage: "also delete the installed binary and config file",
			},
		},
		Action: func(c *cli.Context) error {
			inst := setup.NewInstaller(appVersion(), os.Stdin, c.App.Writer)
			return inst.Uninstall(setup.UninstallOptions{
				Mode:  c.String("mode"),
				Purge: c.Bool("purge"),
			})
		},
	}
}

// detailArgs returns the category key and whether --json followed it.
// Flag parsing stops at the first positional argument, so a trailing flag
// arrives here as an argument.
func detailArgs(args []string) (string, bool) {
	var key string
	asJSON := false
	for _, a := range args {
		switch a {
		case "--json", "-json":
			asJSON = true
		default:
			if key == "" {
				key = a
			}
		}
	}
	return key, asJSON
}

func parseTab(name string) (tui.Tab, error) {
	switch name {
	case "device", "":
		return tui.TabDevice, nil
	case "network":
		return tui.TabNetwork, nil
	case "storage":
		return tui.TabStorage, nil
	default:
		return tui.TabDevice, fmt.Errorf("unknown view %q (want device, network or storage)", name)
	}
}
