package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/format"
	"github.com/Guliveer/vitalis/monitor/internal/models"
	"github.com/Guliveer/vitalis/monitor/internal/viewmodel"
)

// writeDashboard prints a plain-text summary of s.
func writeDashboard(w io.Writer, s models.TelemetrySnapshot) {
	d := viewmodel.Build(s)

	for _, c := range detail.Categories() {
		title, _ := detail.Title(c)
		fmt.Fprintf(w, "%s\n", title)
		writeRows(w, detail.Project(s, c))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Storage")
	if len(d.Disks) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, disk := range d.Disks {
		var tags []string
		if disk.NVMe {
			tags = append(tags, "nvme")
		}
		if disk.HighUsage {
			tags = append(tags, "high usage")
		}
		line := fmt.Sprintf("  %-16s %-20s %s of %s (%s)",
			disk.MountPoint, disk.Name,
			format.Bytes(disk.UsedBytes), format.Bytes(disk.TotalSpaceBytes),
			format.Percent(disk.UsedPercent))
		if len(tags) > 0 {
			line += " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Network")
	if len(d.Networks) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, n := range d.Networks {
		kind := "wired"
		if n.Wireless {
			kind = "wireless"
		}
		fmt.Fprintf(w, "  %-16s %-8s rx %s  tx %s  (total %s / %s)\n",
			n.Name, kind,
			format.Rate(n.ReceivedBytes), format.Rate(n.TransmittedBytes),
			format.Bytes(n.TotalReceivedBytes), format.Bytes(n.TotalTransmittedBytes))
	}
}

// writeDetail prints the rows of one category under its title.
func writeDetail(w io.Writer, c detail.Category, rows []detail.Row) {
	title, description := detail.Title(c)
	fmt.Fprintf(w, "%s - %s\n", title, description)
	writeRows(w, rows)
}

func writeRows(w io.Writer, rows []detail.Row) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Label))
	}
	for _, r := range rows {
		marker := " "
		if r.Highlighted {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-*s  %s\n", marker, width, r.Label, r.Value)
	}
}
