//go:build linux

package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const serviceName = "vitalis-monitor"

// unitTemplate is the systemd unit file written during installation.
const unitTemplate = `[Unit]
Description=Vitalis telemetry provider
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart={execPath} {args}
Restart=always
RestartSec=10
StandardOutput=journal
StandardError=journal
SyslogIdentifier=vitalis-monitor
{hardening}
[Install]
WantedBy={target}
`

// systemHardening applies only to system units; user units cannot drop
// privileges they never had.
const systemHardening = `
# Security hardening
NoNewPrivileges=true
ProtectSystem=strict
ProtectHome=read-only
PrivateTmp=true
`

// linuxManager implements Manager for Linux using systemd.
type linuxManager struct {
	mode     Mode
	unitPath string
}

// New returns a Manager that uses systemd for service management.
func New(mode Mode) Manager {
	m := &linuxManager{mode: mode}
	if mode == UserMode {
		home, _ := os.UserHomeDir()
		m.unitPath = filepath.Join(home, ".config", "systemd", "user", serviceName+".service")
	} else {
		m.unitPath = filepath.Join("/etc/systemd/system", serviceName+".service")
	}
	return m
}

// ServiceName returns the systemd service name.
func (l *linuxManager) ServiceName() string { return serviceName }

// IsInstalled checks whether the systemd unit file exists.
func (l *linuxManager) IsInstalled() (bool, error) {
	_, err := os.Stat(l.unitPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking unit file: %w", err)
	}
	return true, nil
}

// Install writes the systemd unit file, reloads the daemon, enables and starts the service.
func (l *linuxManager) Install(execPath string) error {
	if err := os.MkdirAll(filepath.Dir(l.unitPath), 0755); err != nil {
		return fmt.Errorf("creating unit directory: %w", err)
	}
	if err := os.WriteFile(l.unitPath, []byte(l.unit(execPath)), 0644); err != nil {
		return fmt.Errorf("writing unit file: %w", err)
	}

	commands := [][]string{
		l.systemctl("daemon-reload"),
		l.systemctl("enable", serviceName),
		l.systemctl("start", serviceName),
	}
	for _, args := range commands {
		if err := run(args); err != nil {
			return err
		}
	}
	return nil
}

// Uninstall stops, disables, and removes the systemd service.
func (l *linuxManager) Uninstall() error {
	// Best-effort stop and disable; the service may already be inactive.
	_ = run(l.systemctl("stop", serviceName))
	_ = run(l.systemctl("disable", serviceName))

	if err := os.Remove(l.unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing unit file: %w", err)
	}

	_ = run(l.systemctl("daemon-reload"))
	return nil
}

func (l *linuxManager) unit(execPath string) string {
	values := map[string]string{
		"execPath":  execPath,
		"args":      strings.Join(ServeArgs, " "),
		"hardening": systemHardening,
		"target":    "multi-user.target",
	}
	if l.mode == UserMode {
		values["hardening"] = ""
		values["target"] = "default.target"
	}
	return render(unitTemplate, values)
}

func (l *linuxManager) systemctl(args ...string) []string {
	if l.mode == UserMode {
		return append([]string{"systemctl", "--user"}, args...)
	}
	return append([]string{"systemctl"}, args...)
}

func run(args []string) error {
	if err := exec.Command(args[0], args[1:]...).Run(); err != nil {
		return fmt.Errorf("running %s: %w", strings.Join(args, " "), err)
	}
	return nil
}
