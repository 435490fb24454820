package autostart

import (
	"errors"
	"testing"
)

func TestRender(t *testing.T) {
	got := render("ExecStart={execPath} {args}", map[string]string{
		"execPath": "/opt/vitalis/vitalis-monitor",
		"args":     "serve",
	})
	if want := "ExecStart=/opt/vitalis/vitalis-monitor serve"; got != want {
		t.Errorf("render() = %q, want %q", got, want)
	}
}

func TestRender_UnknownPlaceholderKept(t *testing.T) {
	got := render("{a}-{b}", map[string]string{"a": "x"})
	if got != "x-{b}" {
		t.Errorf("render() = %q", got)
	}
}

func TestUnsupportedManager(t *testing.T) {
	m := unsupportedManager{name: "svc"}
	if m.ServiceName() != "svc" {
		t.Errorf("ServiceName() = %q", m.ServiceName())
	}
	if _, err := m.IsInstalled(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("IsInstalled() err = %v", err)
	}
	if err := m.Install("/bin/x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Install() err = %v", err)
	}
	if err := m.Uninstall(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Uninstall() err = %v", err)
	}
}
