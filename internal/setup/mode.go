package setup

import (
	"fmt"
	"strings"
)

// InstallMode decides who owns the provider service: the machine (system
// unit, LaunchDaemon, SCM entry) or the invoking user.
type InstallMode int

const (
	ModeSystem InstallMode = iota
	ModeUser
)

var modeNames = map[InstallMode]string{
	ModeSystem: "system",
	ModeUser:   "user",
}

func (m InstallMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Describe is the one-line choice shown by the install prompts.
func (m InstallMode) Describe() string {
	if m == ModeUser {
		return "User: runs at login for the current user only"
	}
	return "System: runs at boot for every user, requires root/admin"
}

// ParseMode reads a --mode value. Case and surrounding space are ignored.
func ParseMode(s string) (InstallMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown install mode %q (want system or user)", s)
}

// Paths is where one mode puts the binary and the monitor.yaml that
// `serve` finds through config.Locate.
type Paths struct {
	BinDir     string
	BinPath    string
	ConfigDir  string
	ConfigPath string
}
