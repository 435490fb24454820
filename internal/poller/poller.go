// Package poller owns the polling lifecycle for one telemetry consumer.
//
// A Poller dispatches a fetch immediately on start and then on a fixed
// ticker schedule, independent of how long each fetch takes. Every dispatch
// is tagged with a monotonically increasing generation; a completion is only
// accepted when its tag still equals the current generation, so a slow early
// response can never overwrite a newer one. Stop bumps the generation past
// every outstanding tag, which makes teardown use the same rejection path.
//
// Failures never reach the caller: they are recorded in State.LastError while
// the last accepted snapshot is kept on screen.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

// DefaultInterval is used when a non-positive interval is supplied.
const DefaultInterval = time.Second

// ErrFetch wraps every failure reported by a fetch function.
var ErrFetch = errors.New("telemetry fetch failed")

// FetchFunc retrieves one snapshot from a telemetry provider.
type FetchFunc func(ctx context.Context) (models.TelemetrySnapshot, error)

// State is the consumer-visible polling state.
type State struct {
	// Snapshot is the last accepted snapshot, nil until the first success.
	Snapshot *models.TelemetrySnapshot
	// Loading is true until the first response is accepted.
	Loading bool
	// LastError is the most recent accepted failure, cleared on success.
	LastError error
	// Generation tags the most recently dispatched fetch.
	Generation uint64
	// UpdatedAt is when the last response was accepted.
	UpdatedAt time.Time
}

// HasSnapshot reports whether any snapshot has been accepted.
func (s State) HasSnapshot() bool { return s.Snapshot != nil }

// Option configures a Poller.
type Option func(*Poller)

// WithTimeout bounds every fetch call. Defaults to the polling interval.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithName labels log entries, e.g. with the view that owns the poller.
func WithName(name string) Option {
	return func(p *Poller) { p.name = name }
}

// WithOnUpdate registers a callback invoked after every accepted response.
// Callbacks run on the fetch goroutine, in acceptance order.
func WithOnUpdate(fn func(State)) Option {
	return func(p *Poller) {
		if fn != nil {
			p.listeners = append(p.listeners, fn)
		}
	}
}

// Poller periodically fetches telemetry for a single consumer.
type Poller struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	fetch    FetchFunc
	logger   *zap.Logger
	now      func() time.Time

	mu             sync.Mutex
	state          State
	stopped        bool
	cancelInflight context.CancelFunc

	// notifyMu keeps listener calls in acceptance order.
	notifyMu  sync.Mutex
	listeners []func(State)

	refreshCh chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	loopDone  chan struct{}
	inflight  sync.WaitGroup
}

// Start creates a Poller and begins polling. The returned Poller is the
// handle passed back to Stop. Cancelling ctx has the same effect as Stop.
func Start(ctx context.Context, interval time.Duration, fetch FetchFunc, opts ...Option) *Poller {
	p := newPoller(interval, fetch, opts...)
	go p.loop(ctx)
	return p
}

func newPoller(interval time.Duration, fetch FetchFunc, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		name:      "default",
		interval:  interval,
		timeout:   interval,
		fetch:     fetch,
		logger:    zap.NewNop(),
		now:       time.Now,
		state:     State{Loading: true},
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		loopDone:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the polling period.
func (p *Poller) Interval() time.Duration { return p.interval }

// State returns a copy of the current polling state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Refresh requests an immediate out-of-schedule fetch. It never blocks;
// a refresh already pending absorbs further requests.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// Stop cancels the schedule and rejects every response still in flight.
// It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.halt()
	<-p.loopDone
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.loopDone)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			p.halt()
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.dispatch(ctx)
		case <-p.refreshCh:
			p.dispatch(ctx)
		}
	}
}

// dispatch issues one fetch tagged with a fresh generation. The previous
// fetch, if still running, is cancelled: its tag is stale from here on.
func (p *Poller) dispatch(parent context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	if p.cancelInflight != nil {
		p.cancelInflight()
	}
	p.state.Generation++
	tag := p.state.Generation
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	p.cancelInflight = cancel
	p.inflight.Add(1)
	p.mu.Unlock()

	p.logger.Debug("Dispatching telemetry fetch",
		zap.String("poller", p.name),
		zap.Uint64("generation", tag))

	go func() {
		defer p.inflight.Done()
		defer cancel()
		snap, err := p.fetch(ctx)
		p.complete(tag, snap, err)
	}()
}

// complete applies a finished fetch if its tag is still current.
func (p *Poller) complete(tag uint64, snap models.TelemetrySnapshot, err error) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.stopped || tag != p.state.Generation {
		current := p.state.Generation
		p.mu.Unlock()
		p.logger.Debug("Discarding stale telemetry response",
			zap.String("poller", p.name),
			zap.Uint64("generation", tag),
			zap.Uint64("current", current))
		return
	}

	p.state.Loading = false
	p.state.UpdatedAt = p.now()
	if err != nil {
		p.state.LastError = fmt.Errorf("%w: %w", ErrFetch, err)
	} else {
		accepted := snap.Clone()
		p.state.Snapshot = &accepted
		p.state.LastError = nil
	}
	state := p.state
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("Telemetry fetch failed, keeping last snapshot",
			zap.String("poller", p.name),
			zap.Uint64("generation", tag),
			zap.Bool("has_snapshot", state.HasSnapshot()),
			zap.Error(err))
	} else {
		p.logger.Debug("Accepted telemetry snapshot",
			zap.String("poller", p.name),
			zap.Uint64("generation", tag))
	}

	for _, fn := range p.listeners {
		fn(state)
	}
}

// halt marks the poller stopped and moves the generation past every
// outstanding tag.
func (p *Poller) halt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	p.state.Generation++
	if p.cancelInflight != nil {
		p.cancelInflight()
		p.cancelInflight = nil
	}
}
