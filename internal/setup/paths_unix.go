//go:build !windows

package setup

import (
	"os"
	"path/filepath"
)

func ResolvePaths(mode InstallMode) Paths {
	if mode == ModeUser {
		home, _ := os.UserHomeDir()
		base := filepath.Join(home, ".vitalis")
		return Paths{
			BinDir:     filepath.Join(base, "bin"),
			BinPath:    filepath.Join(base, "bin", "vitalis-monitor"),
			ConfigDir:  base,
			ConfigPath: filepath.Join(base, "monitor.yaml"),
		}
	}
	return Paths{
		BinDir:     "/opt/vitalis",
		BinPath:    "/opt/vitalis/vitalis-monitor",
		ConfigDir:  "/etc/vitalis",
		ConfigPath: "/etc/vitalis/monitor.yaml",
	}
}
