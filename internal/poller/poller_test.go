package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

// fetchCall is one pending fetch whose outcome the test decides.
type fetchCall struct {
	ctx   context.Context
	reply chan fetchResult
}

type fetchResult struct {
	snap models.TelemetrySnapshot
	err  error
}

// fakeProvider hands every fetch to the test through a channel so
// completion order can be scripted.
type fakeProvider struct {
	calls chan fetchCall
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{calls: make(chan fetchCall, 16)}
}

func (f *fakeProvider) fetch(ctx context.Context) (models.TelemetrySnapshot, error) {
	c := fetchCall{ctx: ctx, reply: make(chan fetchResult, 1)}
	f.calls <- c
	r := <-c.reply
	return r.snap, r.err
}

func (f *fakeProvider) next(t *testing.T) fetchCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return fetchCall{}
	}
}

func (c fetchCall) succeed(host string) {
	c.reply <- fetchResult{snap: models.TelemetrySnapshot{HostName: host}}
}

func (c fetchCall) fail(err error) {
	c.reply <- fetchResult{err: err}
}

func startManual(t *testing.T, f *fakeProvider, opts ...Option) *Poller {
	t.Helper()
	p := Start(context.Background(), time.Hour, f.fetch, opts...)
	t.Cleanup(p.Stop)
	return p
}

func TestPoller_InitialStateIsLoading(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t)

	st := p.State()
	assert.True(t, st.Loading)
	assert.Nil(t, st.Snapshot)
	assert.NoError(t, st.LastError)
	assert.Equal(t, uint64(1), st.Generation)
	assert.False(t, st.HasSnapshot())
}

func TestPoller_AcceptsCurrentResponse(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t).succeed("first")
	p.inflight.Wait()

	st := p.State()
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, "first", st.Snapshot.HostName)
	assert.False(t, st.Loading)
	assert.NoError(t, st.LastError)
	assert.False(t, st.UpdatedAt.IsZero())
}

func TestPoller_OutOfOrderResponseIsDiscarded(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	a := f.next(t)
	p.Refresh()
	b := f.next(t)

	b.succeed("b")
	a.succeed("a")
	p.inflight.Wait()

	st := p.State()
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, "b", st.Snapshot.HostName)
	assert.Equal(t, uint64(2), st.Generation)
}

func TestPoller_StaleResponseBeforeNewerCompletesIsDiscarded(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	a := f.next(t)
	p.Refresh()
	b := f.next(t)

	a.succeed("a")
	time.Sleep(10 * time.Millisecond)
	b.succeed("b")
	p.inflight.Wait()

	st := p.State()
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, "b", st.Snapshot.HostName)
}

func TestPoller_SupersededFetchIsCancelled(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	a := f.next(t)
	p.Refresh()
	b := f.next(t)

	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
	assert.NoError(t, b.ctx.Err())

	a.fail(a.ctx.Err())
	b.succeed("b")
	p.inflight.Wait()

	st := p.State()
	assert.NoError(t, st.LastError)
	require.NotNil(t, st.Snapshot)
	assert.Equal(t, "b", st.Snapshot.HostName)
}

func TestPoller_ResponseBeforeNextDispatchIsAccepted(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t).succeed("a")
	p.inflight.Wait()
	require.Equal(t, "a", p.State().Snapshot.HostName)

	p.Refresh()
	f.next(t).succeed("b")
	p.inflight.Wait()

	assert.Equal(t, "b", p.State().Snapshot.HostName)
}

func TestPoller_FailureRetainsLastSnapshot(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t).succeed("good")
	p.inflight.Wait()
	before := p.State().Snapshot

	boom := errors.New("provider unreachable")
	p.Refresh()
	f.next(t).fail(boom)
	p.inflight.Wait()

	st := p.State()
	assert.Same(t, before, st.Snapshot)
	assert.Equal(t, "good", st.Snapshot.HostName)
	assert.False(t, st.Loading)
	assert.ErrorIs(t, st.LastError, ErrFetch)
	assert.ErrorIs(t, st.LastError, boom)
}

func TestPoller_SuccessClearsLastError(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t).fail(errors.New("down"))
	p.inflight.Wait()
	require.Error(t, p.State().LastError)

	p.Refresh()
	f.next(t).succeed("back")
	p.inflight.Wait()

	st := p.State()
	assert.NoError(t, st.LastError)
	assert.Equal(t, "back", st.Snapshot.HostName)
}

func TestPoller_FailureWithoutSnapshot(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	f.next(t).fail(errors.New("down"))
	p.inflight.Wait()

	st := p.State()
	assert.Nil(t, st.Snapshot)
	assert.False(t, st.Loading)
	assert.ErrorIs(t, st.LastError, ErrFetch)
}

func TestPoller_StaleFailureIsDiscarded(t *testing.T) {
	f := newFakeProvider()
	p := startManual(t, f)

	a := f.next(t)
	p.Refresh()
	b := f.next(t)

	b.succeed("b")
	a.fail(errors.New("late failure"))
	p.inflight.Wait()

	assert.NoError(t, p.State().LastError)
}

func TestPoller_StopRejectsInflightSuccess(t *testing.T) {
	f := newFakeProvider()
	p := Start(context.Background(), time.Hour, f.fetch)

	a := f.next(t)
	p.Stop()
	after := p.State()

	a.succeed("too late")
	p.inflight.Wait()

	assert.Equal(t, after, p.State())
	assert.Nil(t, p.State().Snapshot)
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
}

func TestPoller_StopRejectsInflightFailure(t *testing.T) {
	f := newFakeProvider()
	p := Start(context.Background(), time.Hour, f.fetch)

	f.next(t).succeed("kept")
	p.inflight.Wait()

	p.Refresh()
	a := f.next(t)
	p.Stop()
	after := p.State()

	a.fail(errors.New("late"))
	p.inflight.Wait()

	assert.Equal(t, after, p.State())
	assert.NoError(t, p.State().LastError)
	assert.Equal(t, "kept", p.State().Snapshot.HostName)
}

func TestPoller_StopIsIdempotentAndStopsDispatching(t *testing.T) {
	f := newFakeProvider()
	p := Start(context.Background(), time.Hour, f.fetch)
	f.next(t).succeed("x")

	p.Stop()
	p.Stop()
	p.Refresh()

	select {
	case <-f.calls:
		t.Fatal("fetch dispatched after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPoller_ContextCancelActsAsStop(t *testing.T) {
	f := newFakeProvider()
	ctx, cancel := context.WithCancel(context.Background())
	p := Start(ctx, time.Hour, f.fetch)

	a := f.next(t)
	cancel()
	<-p.loopDone

	a.succeed("late")
	p.inflight.Wait()

	assert.Nil(t, p.State().Snapshot)
	p.Stop()
}

func TestPoller_FixedScheduleDispatchesRepeatedly(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (models.TelemetrySnapshot, error) {
		calls.Add(1)
		return models.TelemetrySnapshot{HostName: "tick"}, nil
	}

	p := Start(context.Background(), 10*time.Millisecond, fetch)
	defer p.Stop()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 },
		2*time.Second, 5*time.Millisecond)
}

func TestPoller_TimeoutBecomesFailure(t *testing.T) {
	fetch := func(ctx context.Context) (models.TelemetrySnapshot, error) {
		<-ctx.Done()
		return models.TelemetrySnapshot{}, ctx.Err()
	}

	p := Start(context.Background(), time.Hour, fetch, WithTimeout(20*time.Millisecond))
	defer p.Stop()

	require.Eventually(t, func() bool { return !p.State().Loading },
		2*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, p.State().LastError, context.DeadlineExceeded)
}

func TestPoller_OnUpdateReceivesAcceptedStates(t *testing.T) {
	f := newFakeProvider()
	updates := make(chan State, 4)
	p := startManual(t, f, WithOnUpdate(func(s State) { updates <- s }), WithName("test"))

	a := f.next(t)
	p.Refresh()
	b := f.next(t)
	a.succeed("stale")
	b.succeed("fresh")
	p.inflight.Wait()

	require.Len(t, updates, 1)
	st := <-updates
	assert.Equal(t, "fresh", st.Snapshot.HostName)
}

func TestPoller_AcceptedSnapshotIsCopied(t *testing.T) {
	shared := models.TelemetrySnapshot{Disks: []models.DiskInfo{{Name: "sda"}}}
	fetch := func(ctx context.Context) (models.TelemetrySnapshot, error) {
		return shared, nil
	}

	p := Start(context.Background(), time.Hour, fetch)
	defer p.Stop()
	require.Eventually(t, func() bool { return p.State().HasSnapshot() },
		2*time.Second, 5*time.Millisecond)

	shared.Disks[0].Name = "mutated"
	assert.Equal(t, "sda", p.State().Snapshot.Disks[0].Name)
}

func TestNewPoller_Defaults(t *testing.T) {
	p := newPoller(0, nil)
	assert.Equal(t, DefaultInterval, p.Interval())
	assert.Equal(t, DefaultInterval, p.timeout)

	p = newPoller(5*time.Second, nil, WithTimeout(time.Second), WithLogger(nil))
	assert.Equal(t, 5*time.Second, p.Interval())
	assert.Equal(t, time.Second, p.timeout)
	assert.NotNil(t, p.logger)
}
