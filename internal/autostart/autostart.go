// Package autostart registers the provider server with the platform service
// manager (systemd, launchd or the Windows SCM) so it starts at boot or
// login.
package autostart

import (
	"errors"
	"strings"
)

// Mode determines whether the service is installed system-wide or per-user.
type Mode int

const (
	SystemMode Mode = iota // System-wide service (requires root/admin)
	UserMode               // Per-user service/agent
)

// ServeArgs are the arguments the registered service runs the binary with.
var ServeArgs = []string{"serve"}

// ErrUnsupported is returned when the platform or mode has no service manager.
var ErrUnsupported = errors.New("autostart not supported on this platform")

// Manager provides platform-specific autostart installation.
type Manager interface {
	IsInstalled() (bool, error)
	Install(execPath string) error
	Uninstall() error
	ServiceName() string
}

// render substitutes {key} placeholders in tmpl.
func render(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
