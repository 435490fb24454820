// Package setup installs the monitor as a background provider service:
// binary copy, config file and service registration.
package setup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Guliveer/vitalis/monitor/internal/autostart"
	"github.com/Guliveer/vitalis/monitor/internal/config"
)

// Options holds the flags passed to the install command.
type Options struct {
	Mode        string // "system", "user", or "" (interactive)
	Listen      string // Provider listen address or "" (interactive)
	ProviderURL string // Upstream provider for the service, "" for the local collector
}

// UninstallOptions holds the flags passed to the uninstall command.
type UninstallOptions struct {
	Mode  string
	Purge bool // also remove the installed binary and config file
}

// Installer carries the side effects of an installation so they can be
// replaced in tests.
type Installer struct {
	Version    string
	Out        io.Writer
	Prompt     Prompter
	Paths      func(InstallMode) Paths
	Manager    func(autostart.Mode) autostart.Manager
	Elevate    func(InstallMode) error
	Executable func() (string, error)
}

// NewInstaller returns an Installer using the real platform paths, service
// manager and privilege check.
func NewInstaller(version string, in io.Reader, out io.Writer) *Installer {
	return &Installer{
		Version:    version,
		Out:        out,
		Prompt:     defaultPrompter(in, out),
		Paths:      ResolvePaths,
		Manager:    autostart.New,
		Elevate:    CheckElevation,
		Executable: os.Executable,
	}
}

// Install runs the setup wizard. If all Options are provided, runs
// non-interactively.
func (i *Installer) Install(opts Options) error {
	fmt.Fprintf(i.Out, "\nVitalis Monitor Setup %s\n", i.Version)
	fmt.Fprintln(i.Out, strings.Repeat("─", 30))
	fmt.Fprintln(i.Out)

	mode, err := i.resolveMode(opts.Mode)
	if err != nil {
		return err
	}
	if err := i.Elevate(mode); err != nil {
		return err
	}
	paths := i.Paths(mode)

	listen := opts.Listen
	if listen == "" {
		listen, err = i.Prompt.Input("Listen address", config.DefaultConfig().Server.Listen)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(i.Out, "\nInstalling...")

	for _, dir := range []string{paths.BinDir, paths.ConfigDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
		fmt.Fprintf(i.Out, "  ✓ Created %s\n", dir)
	}

	copied, err := i.copyBinary(paths.BinPath)
	if err != nil {
		return fmt.Errorf("copying binary: %w", err)
	}
	if copied {
		fmt.Fprintf(i.Out, "  ✓ Copied binary → %s\n", paths.BinPath)
	} else {
		fmt.Fprintln(i.Out, "  (binary already in place)")
	}

	cfg := config.DefaultConfig()
	cfg.Server.Listen = listen
	cfg.Provider.URL = opts.ProviderURL
	cfg.Logging.File = "" // service manager captures stderr
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.WriteConfig(cfg, paths.ConfigPath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(i.Out, "  ✓ Written config → %s\n", paths.ConfigPath)

	mgr := i.Manager(autostartMode(mode))
	if err := mgr.Install(paths.BinPath); err != nil {
		return fmt.Errorf("registering service: %w", err)
	}
	fmt.Fprintf(i.Out, "  ✓ Registered service (%s)\n", mgr.ServiceName())

	fmt.Fprintf(i.Out, "\nDone! Provider is serving on %s.\n", listen)
	return nil
}

// Uninstall removes the service registration and, with Purge, the files
// Install created.
func (i *Installer) Uninstall(opts UninstallOptions) error {
	mode, err := i.resolveMode(opts.Mode)
	if err != nil {
		return err
	}
	if err := i.Elevate(mode); err != nil {
		return err
	}
	paths := i.Paths(mode)

	mgr := i.Manager(autostartMode(mode))
	installed, err := mgr.IsInstalled()
	if err != nil {
		return fmt.Errorf("checking service: %w", err)
	}
	if installed {
		if err := mgr.Uninstall(); err != nil {
			return fmt.Errorf("removing service: %w", err)
		}
		fmt.Fprintf(i.Out, "  ✓ Removed service (%s)\n", mgr.ServiceName())
	} else {
		fmt.Fprintf(i.Out, "  (service %s not installed)\n", mgr.ServiceName())
	}

	if !opts.Purge {
		return nil
	}
	for _, p := range []string{paths.BinPath, paths.ConfigPath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
		fmt.Fprintf(i.Out, "  ✓ Removed %s\n", p)
	}
	return nil
}

func autostartMode(mode InstallMode) autostart.Mode {
	if mode == ModeUser {
		return autostart.UserMode
	}
	return autostart.SystemMode
}

// copyBinary copies the current executable to dst. It reports false when
// the executable already is dst.
func (i *Installer) copyBinary(dst string) (bool, error) {
	src, err := i.Executable()
	if err != nil {
		return false, err
	}
	src, err = filepath.Abs(filepath.Clean(src))
	if err != nil {
		return false, err
	}
	dst, err = filepath.Abs(filepath.Clean(dst))
	if err != nil {
		return false, err
	}
	if src == dst {
		return false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	return true, out.Close()
}

// resolveMode determines the install mode from flag or interactive prompt.
func (i *Installer) resolveMode(flagValue string) (InstallMode, error) {
	if flagValue != "" {
		return ParseMode(flagValue)
	}
	return i.Prompt.SelectMode()
}
