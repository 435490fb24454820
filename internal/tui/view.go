package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/format"
	"github.com/Guliveer/vitalis/monitor/internal/viewmodel"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), ""}
	if m.selection.Open() {
		sections = append(sections, m.renderDetail())
	} else {
		sections = append(sections, m.renderBody())
	}
	sections = append(sections, "", m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(tabOrder))
	for i, t := range tabOrder {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("vitalis"),
		" ",
		strings.Join(tabs, ""),
		"  ",
		m.renderStatus())
}

func (m Model) renderStatus() string {
	status := viewmodel.Availability(m.state)
	switch status {
	case viewmodel.StatusLoading:
		return m.spinner.View() + " " + mutedStyle.Render(status.String())
	case viewmodel.StatusUnavailable:
		return errorStyle.Render("● " + status.String())
	case viewmodel.StatusDegraded:
		return warningStyle.Render("● " + status.String())
	default:
		return liveStyle.Render("● " + status.String())
	}
}

func (m Model) renderBody() string {
	switch viewmodel.Availability(m.state) {
	case viewmodel.StatusLoading:
		return m.spinner.View() + " Loading " + m.tab.String() + "..."
	case viewmodel.StatusUnavailable:
		msg := errorStyle.Render("Data unavailable")
		if m.state.LastError != nil {
			msg += "\n" + mutedStyle.Render(m.state.LastError.Error())
		}
		return msg
	}

	dash := viewmodel.Build(*m.state.Snapshot)
	var body string
	switch m.tab {
	case TabNetwork:
		body = renderNetwork(dash.Networks)
	case TabStorage:
		body = renderStorage(dash.Disks)
	default:
		body = renderDevice(dash)
	}

	if m.state.LastError != nil {
		body += "\n" + warningStyle.Render("Last update failed, showing previous data: "+m.state.LastError.Error())
	}
	return body
}

func renderDevice(d viewmodel.Dashboard) string {
	system := cardStyle.Render(strings.Join([]string{
		headingStyle.Render(orPlaceholder(d.Host.HostName)),
		field("OS", orPlaceholder(d.Host.OSName)),
		field("Kernel", orPlaceholder(d.Host.KernelVersion)),
		field("Uptime", format.Duration(d.Host.UptimeSeconds)),
	}, "\n"))

	threads := strconv.Itoa(d.CPU.Threads)
	if d.CPU.ThreadsEstimated {
		threads += mutedStyle.Render(" (est.)")
	}
	cpu := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("CPU"),
		valueStyle.Render(orPlaceholder(d.CPU.Brand)),
		field("Cores", fmt.Sprintf("%d / %s threads", d.CPU.Cores, threads)),
		field("Clock", format.Frequency(d.CPU.FrequencyMHz)),
	}, "\n"))

	mem := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("Memory"),
		usageBar(d.Memory.UsedPercent, barWidth) + " " + format.Percent(d.Memory.UsedPercent),
		field("Used", format.Bytes(d.Memory.UsedBytes)+" of "+format.Bytes(d.Memory.TotalBytes)),
		field("Free", format.Bytes(d.Memory.AvailableBytes)),
	}, "\n"))

	gpu := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("GPU"),
		valueStyle.Render(orPlaceholder(d.GPU.Name)),
		field("Type", d.GPU.Kind.String()),
	}, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, system, cpu),
		lipgloss.JoinHorizontal(lipgloss.Top, mem, gpu))
}

func renderNetwork(nets []viewmodel.NetworkView) string {
	if len(nets) == 0 {
		return mutedStyle.Render("No network interfaces")
	}
	lines := make([]string, 0, len(nets))
	for _, n := range nets {
		kind := "wired"
		if n.Wireless {
			kind = "wireless"
		}
		head := headingStyle.Render(n.Name) + " " + mutedStyle.Render(kind)
		if n.MACAddress != "" {
			head += " " + mutedStyle.Render(n.MACAddress)
		}
		rows := []string{
			head,
			field("↓", format.Rate(n.ReceivedBytes)) + "  " + field("↑", format.Rate(n.TransmittedBytes)),
			field("Total", format.Bytes(n.TotalReceivedBytes)+" received, "+format.Bytes(n.TotalTransmittedBytes)+" sent"),
		}
		if len(n.IPAddresses) > 0 {
			rows = append(rows, field("IP", strings.Join(n.IPAddresses, ", ")))
		}
		lines = append(lines, cardStyle.Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStorage(disks []viewmodel.DiskView) string {
	if len(disks) == 0 {
		return mutedStyle.Render("No disks")
	}
	lines := make([]string, 0, len(disks))
	for _, d := range disks {
		head := headingStyle.Render(orPlaceholder(d.MountPoint)) + " " + mutedStyle.Render(d.Name)
		if d.NVMe {
			head += " " + highlightStyle.Render("NVMe")
		}
		if d.FileSystem != "" {
			head += " " + mutedStyle.Render(d.FileSystem)
		}
		usage := usageBar(d.UsedPercent, barWidth) + " " + format.Percent(d.UsedPercent)
		if d.HighUsage {
			usage += " " + errorStyle.Render("high usage")
		}
		rows := []string{
			head,
			usage,
			field("Used", format.Bytes(d.UsedBytes)+" of "+format.Bytes(d.TotalSpaceBytes)),
			field("Free", format.Bytes(d.AvailableSpaceBytes)),
		}
		lines = append(lines, cardStyle.Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDetail() string {
	title, description := detail.Title(m.selection.Category)
	parts := []string{headingStyle.Render(title), mutedStyle.Render(description), ""}

	if m.state.Snapshot == nil {
		parts = append(parts, m.renderBody())
		return overlayStyle.Render(strings.Join(parts, "\n"))
	}

	rows := detail.Project(*m.state.Snapshot, m.selection.Category)
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}
	for _, r := range rows {
		label := labelStyle.Render(fmt.Sprintf("%-*s", width, r.Label))
		value := valueStyle.Render(r.Value)
		if r.Highlighted {
			value = highlightStyle.Render(r.Value)
		}
		parts = append(parts, label+"  "+value)
	}
	return overlayStyle.Render(strings.Join(parts, "\n"))
}

func (m Model) renderFooter() string {
	bindings := helpBindings(m.selection.Open())
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, h.Key+" "+mutedStyle.Render(h.Desc))
	}
	return mutedStyle.Render(strings.Join(items, " • "))
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return detail.Placeholder
	}
	return s
}
