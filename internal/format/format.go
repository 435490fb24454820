// Package format turns raw telemetry numbers into display-ready strings.
// Every function here is pure and deterministic.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// byteUnits is the 1024-based unit ladder used by ByteSize.
var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

const unitBase = 1024

// ByteSize renders bytes in the largest unit whose scaled value is at least 1,
// rounded to decimals fractional digits with trailing zeros removed.
func ByteSize(bytes uint64, decimals int) string {
	if bytes == 0 {
		return "0 " + byteUnits[0]
	}
	if decimals < 0 {
		decimals = 0
	}

	value := float64(bytes)
	i := 0
	for value >= unitBase && i < len(byteUnits)-1 {
		value /= unitBase
		i++
	}

	return trimFloat(value, decimals) + " " + byteUnits[i]
}

// Bytes is ByteSize with two fractional digits.
func Bytes(bytes uint64) string {
	return ByteSize(bytes, 2)
}

// Rate renders a per-interval byte delta as a per-second transfer rate.
func Rate(bytesPerInterval uint64) string {
	return Bytes(bytesPerInterval) + "/s"
}

// Duration renders seconds as "2d 3h 4m", skipping zero components.
// Durations under a minute fall back to "<seconds>s".
func Duration(seconds uint64) string {
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return strings.Join(parts, " ")
}

// Frequency renders a clock speed given in MHz.
func Frequency(mhz float64) string {
	if mhz < 0 {
		mhz = 0
	}
	if mhz >= 1000 {
		return trimFloat(mhz/1000, 2) + " GHz"
	}
	return trimFloat(mhz, 0) + " MHz"
}

// Percent renders a percentage with one fractional digit.
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// trimFloat rounds v to decimals digits and strips trailing zeros,
// so 1.50 becomes "1.5" and 2.00 becomes "2".
func trimFloat(v float64, decimals int) string {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		rounded = v
	}
	return humanize.Ftoa(rounded)
}
