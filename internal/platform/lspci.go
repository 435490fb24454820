package platform

import (
	"errors"
	"strings"
)

// ErrNoDisplayController is returned when lspci lists no graphics device.
var ErrNoDisplayController = errors.New("no display controller found")

// displayClasses are the PCI class names that denote a graphics device.
var displayClasses = []string{
	"VGA compatible controller",
	"3D controller",
	"Display controller",
}

// ParseLspci extracts "<vendor> <device>" for the first display controller in
// machine-readable `lspci -mm` output, whose lines look like:
//
//	00:02.0 "VGA compatible controller" "Intel Corporation" "HD Graphics 620" ...
func ParseLspci(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !isDisplayLine(line) {
			continue
		}
		parts := strings.Split(line, `"`)
		if len(parts) < 6 {
			continue
		}
		vendor := strings.TrimSpace(parts[3])
		model := strings.TrimSpace(parts[5])
		name := strings.TrimSpace(vendor + " " + model)
		if name != "" {
			return name, nil
		}
	}
	return "", ErrNoDisplayController
}

func isDisplayLine(line string) bool {
	for _, class := range displayClasses {
		if strings.Contains(line, class) {
			return true
		}
	}
	return false
}
