// Package tui implements the interactive terminal dashboard.
//
// The dashboard has three tabs (device, network and storage), each polling
// the provider at its own cadence. Only the visible tab polls: switching
// tabs stops the previous poller before the next one starts, and responses
// of the stopped poller are dropped. Pressing o, c, m or g opens a detail
// overlay for the operating system, processor, memory or graphics adapter.
package tui
