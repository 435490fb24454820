// Package detail projects a snapshot onto the label/value rows shown for a
// selected hardware category, independent of how they are rendered.
package detail

import (
	"strconv"
	"strings"

	"github.com/Guliveer/vitalis/monitor/internal/format"
	"github.com/Guliveer/vitalis/monitor/internal/models"
	"github.com/Guliveer/vitalis/monitor/internal/viewmodel"
)

// Placeholder is shown for string fields the provider left empty.
const Placeholder = "Unknown"

// Category is the hardware category a user selected.
type Category int

const (
	None Category = iota
	OS
	CPU
	RAM
	GPU
)

var categoryNames = map[Category]string{
	None: "none",
	OS:   "os",
	CPU:  "cpu",
	RAM:  "ram",
	GPU:  "gpu",
}

// String returns the category key.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[None]
}

// ParseCategory maps a key such as "cpu" to its Category. Unknown keys map
// to None.
func ParseCategory(key string) Category {
	key = strings.ToLower(strings.TrimSpace(key))
	for c, name := range categoryNames {
		if name == key {
			return c
		}
	}
	return None
}

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{OS, CPU, RAM, GPU}
}

// Row is one label/value pair of a detail view.
type Row struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Selection is the ephemeral category choice of one view session.
type Selection struct {
	Category Category
}

// Open reports whether a detail view should be shown.
func (s Selection) Open() bool { return s.Category != None }

type section struct {
	title       string
	description string
	rows        func(models.TelemetrySnapshot) []Row
}

// sections must hold an entry for every category except None.
var sections = map[Category]section{
	OS: {
		title:       "Operating System",
		description: "Kernel and host information",
		rows:        osRows,
	},
	CPU: {
		title:       "Processor",
		description: "Central processing unit",
		rows:        cpuRows,
	},
	RAM: {
		title:       "Memory",
		description: "Physical memory usage",
		rows:        ramRows,
	},
	GPU: {
		title:       "Graphics",
		description: "Graphics adapter",
		rows:        gpuRows,
	},
}

// Project returns the ordered rows for category c. None and unknown
// categories yield an empty slice. The first row is highlighted.
func Project(s models.TelemetrySnapshot, c Category) []Row {
	sec, ok := sections[c]
	if !ok {
		return []Row{}
	}
	rows := sec.rows(s)
	if len(rows) > 0 {
		rows[0].Highlighted = true
	}
	return rows
}

// Title returns the heading and a short description for category c.
func Title(c Category) (string, string) {
	sec, ok := sections[c]
	if !ok {
		return "", ""
	}
	return sec.title, sec.description
}

func osRows(s models.TelemetrySnapshot) []Row {
	return []Row{
		{Label: "Name", Value: text(s.OSName)},
		{Label: "Kernel", Value: text(s.KernelVersion)},
		{Label: "Architecture", Value: text(s.Architecture)},
		{Label: "Hostname", Value: text(s.HostName)},
		{Label: "Uptime", Value: format.Duration(s.UptimeSeconds)},
	}
}

func cpuRows(s models.TelemetrySnapshot) []Row {
	cpu := viewmodel.CPU(s)
	threadsLabel := "Threads"
	if cpu.ThreadsEstimated {
		threadsLabel = "Threads (estimated)"
	}
	return []Row{
		{Label: "Model", Value: text(cpu.Brand)},
		{Label: "Physical cores", Value: strconv.Itoa(max(cpu.Cores, 0))},
		{Label: threadsLabel, Value: strconv.Itoa(max(cpu.Threads, 0))},
		{Label: "Frequency", Value: format.Frequency(cpu.FrequencyMHz)},
	}
}

func ramRows(s models.TelemetrySnapshot) []Row {
	mem := viewmodel.Memory(s)
	return []Row{
		{Label: "Total", Value: format.Bytes(mem.TotalBytes)},
		{Label: "Used", Value: format.Bytes(mem.UsedBytes)},
		{Label: "Available", Value: format.Bytes(mem.AvailableBytes)},
		{Label: "Usage", Value: format.Percent(mem.UsedPercent)},
	}
}

func gpuRows(s models.TelemetrySnapshot) []Row {
	gpu := viewmodel.GPU(s)
	return []Row{
		{Label: "Model", Value: text(gpu.Name)},
		{Label: "Type", Value: gpu.Kind.String()},
	}
}

func text(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}
