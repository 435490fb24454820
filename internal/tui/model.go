package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/poller"
)

// Tab identifies one dashboard view.
type Tab int

const (
	TabDevice Tab = iota
	TabNetwork
	TabStorage
)

var tabOrder = []Tab{TabDevice, TabNetwork, TabStorage}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabDevice:
		return "device"
	case TabNetwork:
		return "network"
	case TabStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Default poll cadences per tab.
const (
	DefaultDeviceInterval  = 2 * time.Second
	DefaultNetworkInterval = time.Second
	DefaultStorageInterval = 5 * time.Second
)

// Options configures a Model.
type Options struct {
	// Fetch retrieves one snapshot.
	Fetch poller.FetchFunc
	// Intervals overrides the cadence of individual tabs.
	Intervals map[Tab]time.Duration
	// Timeout bounds each fetch; zero uses the tab interval.
	Timeout time.Duration
	// Logger receives poller diagnostics. It must not write to the
	// terminal the program draws on.
	Logger *zap.Logger
	// Tab is the initially visible tab.
	Tab Tab
}

// stateMsg carries a poller update tagged with the activation it belongs to.
type stateMsg struct {
	epoch uint64
	state poller.State
}

// activateMsg starts polling for the initial tab.
type activateMsg struct{}

// updates hands poller states to the program. It holds at most one pending
// message; a newer state replaces an unread older one since every state
// is cumulative. States from activations older than current are dropped
// before they can displace a newer one.
type updates struct {
	mu      sync.Mutex
	current uint64
	ch      chan stateMsg
}

func newUpdates() *updates {
	return &updates{ch: make(chan stateMsg, 1)}
}

// begin marks epoch as the live activation and discards a pending state
// left by an earlier one.
func (u *updates) begin(epoch uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.current = epoch
	select {
	case pending := <-u.ch:
		if pending.epoch >= epoch {
			u.ch <- pending
		}
	default:
	}
}

func (u *updates) publish(msg stateMsg) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if msg.epoch < u.current {
		return
	}
	for {
		select {
		case u.ch <- msg:
			return
		default:
		}
		select {
		case <-u.ch:
		default:
		}
	}
}

func (u *updates) wait() tea.Cmd {
	return func() tea.Msg {
		return <-u.ch
	}
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	fetch     poller.FetchFunc
	intervals map[Tab]time.Duration
	timeout   time.Duration
	logger    *zap.Logger

	tab       Tab
	poller    *poller.Poller
	epoch     uint64
	updates   *updates
	state     poller.State
	selection detail.Selection

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a dashboard model. Polling starts when the program runs
// Init.
func NewModel(opts Options) Model {
	intervals := map[Tab]time.Duration{
		TabDevice:  DefaultDeviceInterval,
		TabNetwork: DefaultNetworkInterval,
		TabStorage: DefaultStorageInterval,
	}
	for tab, d := range opts.Intervals {
		if d > 0 {
			intervals[tab] = d
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 10,
	}
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		fetch:     opts.Fetch,
		intervals: intervals,
		timeout:   opts.Timeout,
		logger:    logger,
		tab:       opts.Tab,
		updates:   newUpdates(),
		state:     poller.State{Loading: true},
		spinner:   sp,
	}
}

// Init starts the spinner, the first poller and the update listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return activateMsg{} },
		m.updates.wait(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case activateMsg:
		m.activate(m.tab)

	case stateMsg:
		if msg.epoch == m.epoch {
			m.state = msg.state
		}
		return m, m.updates.wait()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Close):
		m.selection = detail.Selection{}

	case key.Matches(msg, keys.Refresh):
		if m.poller != nil {
			m.poller.Refresh()
		}

	case key.Matches(msg, keys.OS):
		m.selection = detail.Selection{Category: detail.OS}
	case key.Matches(msg, keys.CPU):
		m.selection = detail.Selection{Category: detail.CPU}
	case key.Matches(msg, keys.RAM):
		m.selection = detail.Selection{Category: detail.RAM}
	case key.Matches(msg, keys.GPU):
		m.selection = detail.Selection{Category: detail.GPU}

	case key.Matches(msg, keys.NextTab):
		m.activate(m.tab.next())
	case key.Matches(msg, keys.PrevTab):
		m.activate(m.tab.prev())
	case key.Matches(msg, keys.Device):
		m.activate(TabDevice)
	case key.Matches(msg, keys.Network):
		m.activate(TabNetwork)
	case key.Matches(msg, keys.Storage):
		m.activate(TabStorage)
	}
	return m, nil
}

// activate makes tab visible, stopping the previous poller first so the
// two never run at the same time.
func (m *Model) activate(tab Tab) {
	if m.poller != nil && tab == m.tab {
		return
	}
	m.Close()

	m.epoch++
	epoch := m.epoch
	u := m.updates
	u.begin(epoch)
	m.tab = tab
	m.state = poller.State{Loading: true}

	if m.fetch == nil {
		return
	}
	opts := []poller.Option{
		poller.WithName(tab.String()),
		poller.WithLogger(m.logger),
		poller.WithOnUpdate(func(s poller.State) {
			u.publish(stateMsg{epoch: epoch, state: s})
		}),
	}
	if m.timeout > 0 {
		opts = append(opts, poller.WithTimeout(m.timeout))
	}
	m.poller = poller.Start(context.Background(), m.intervals[tab], m.fetch, opts...)
}

// Close stops the active poller. It is safe to call more than once.
func (m *Model) Close() {
	if m.poller != nil {
		m.poller.Stop()
		m.poller = nil
	}
}

// Tab returns the visible tab.
func (m Model) Tab() Tab { return m.tab }

// State returns the poll state of the visible tab.
func (m Model) State() poller.State { return m.state }

// Selection returns the open detail category, if any.
func (m Model) Selection() detail.Selection { return m.selection }

func (t Tab) next() Tab {
	return tabOrder[(int(t)+1)%len(tabOrder)]
}

func (t Tab) prev() Tab {
	return tabOrder[(int(t)+len(tabOrder)-1)%len(tabOrder)]
}
