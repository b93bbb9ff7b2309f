package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/protocol"
)

func batch(tick uint32, shooters ...string) *protocol.GameEventBatch {
	b := &protocol.GameEventBatch{ServerTick: tick}
	for _, s := range shooters {
		b.Events = append(b.Events, protocol.GameEvent{Kind: protocol.EventHitConfirm, ShooterID: s})
	}
	return b
}

func shooters(evs []protocol.GameEvent) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.ShooterID)
	}
	return out
}

func newTestQueue() *Queue {
	return NewQueue(Config{TickRate: 20, GraceMs: 150})
}

func TestGraceTicks(t *testing.T) {
	tests := []struct {
		rate    float64
		graceMs float64
		want    int64
	}{
		{20, 150, 3},
		{60, 150, 9},
		{60, 100, 6},
		{30, 0, 0},
		{0, 150, 9}, // Falls back to 60 Hz
	}
	for _, tt := range tests {
		q := NewQueue(Config{TickRate: tt.rate, GraceMs: tt.graceMs})
		assert.Equal(t, tt.want, q.GraceTicks(), "rate=%v grace=%v", tt.rate, tt.graceMs)
	}

	q := newTestQueue()
	q.SetTickRate(40)
	assert.Equal(t, int64(6), q.GraceTicks())
}

func TestPushThenDrainInTickOrder(t *testing.T) {
	q := newTestQueue()
	assert.Nil(t, q.Push(batch(7, "c"), 0, 2))
	assert.Nil(t, q.Push(batch(5, "a"), 0, 2))
	assert.Nil(t, q.Push(batch(5, "b"), 0, 2))
	assert.Nil(t, q.Push(batch(12, "late"), 0, 2))

	assert.Empty(t, q.Drain(4.9))
	assert.Equal(t, []string{"a", "b", "c"}, shooters(q.Drain(7.5)))
	assert.Equal(t, int64(7), q.LastDrainedTick())
	assert.Equal(t, []string{"late"}, shooters(q.Drain(12)))

	st := q.Stats()
	assert.Equal(t, uint64(4), st.EnqueuedBatches)
	assert.Equal(t, uint64(4), st.DrainedBatches)
	assert.Equal(t, 0, st.PendingTicks)
}

func TestLateBatchWithinGrace(t *testing.T) {
	q := newTestQueue()
	q.Drain(10)

	got := q.Push(batch(10, "hit"), 500, 10)
	assert.Equal(t, []string{"hit"}, shooters(got))

	got = q.Push(batch(7, "edge"), 500, 10)
	assert.Equal(t, []string{"edge"}, shooters(got))

	st := q.Stats()
	assert.Equal(t, uint64(2), st.LateBatches)
	assert.Equal(t, uint64(0), st.DroppedBatches)
	assert.Equal(t, uint64(0), st.EnqueuedBatches)
}

func TestLateBatchBeyondGraceDropped(t *testing.T) {
	q := newTestQueue()
	q.Drain(20)

	assert.Nil(t, q.Push(batch(0, "a", "b"), 1000, 20))
	assert.Nil(t, q.Push(batch(16, "c"), 1000, 20))

	st := q.Stats()
	assert.Equal(t, uint64(2), st.DroppedBatches)
	assert.Equal(t, uint64(3), st.DroppedEvents)
	assert.Equal(t, uint64(0), st.LateBatches)
	assert.Equal(t, 1000.0, st.LastReceivedAtMs)
}

func TestDrainSameTickTwice(t *testing.T) {
	q := newTestQueue()
	q.Push(batch(3, "x"), 0, 0)
	assert.Len(t, q.Drain(3), 1)
	assert.Empty(t, q.Drain(3))
}

func TestDrainRegressionResets(t *testing.T) {
	q := newTestQueue()
	q.Drain(50)
	q.Push(batch(60, "future"), 0, 50)

	assert.Empty(t, q.Drain(5))
	st := q.Stats()
	assert.Equal(t, uint64(1), st.Resets)
	assert.Equal(t, int64(4), st.LastDrainedTick)
	assert.Equal(t, 0, st.PendingTicks)

	// The new timeline accepts the anchor tick as fresh, not late.
	assert.Nil(t, q.Push(batch(5, "fresh"), 0, 5))
	assert.Equal(t, []string{"fresh"}, shooters(q.Drain(5)))
}

func TestInvalidRenderTickIgnored(t *testing.T) {
	q := newTestQueue()
	q.Push(batch(1, "a"), 0, 0)
	assert.Nil(t, q.Drain(-1))
	assert.Equal(t, int64(-1), q.LastDrainedTick())
	assert.Len(t, q.Drain(1), 1)
}

func TestBoundedMemory(t *testing.T) {
	q := NewQueue(Config{TickRate: 20, GraceMs: 150, MaxBufferedTicks: 4})
	for tick := uint32(1); tick <= 6; tick++ {
		q.Push(batch(tick, "e"), 0, 0)
	}

	st := q.Stats()
	assert.Equal(t, 4, st.PendingTicks)
	assert.Equal(t, uint64(2), st.DroppedBatches)

	got := q.Drain(10)
	require.Len(t, got, 4)
}

func TestStatsIsCopy(t *testing.T) {
	q := newTestQueue()
	st := q.Stats()
	st.DroppedBatches = 99
	assert.Equal(t, uint64(0), q.Stats().DroppedBatches)
}

func TestPushCopiesEvents(t *testing.T) {
	q := newTestQueue()
	b := batch(2, "orig")
	q.Push(b, 0, 0)
	b.Events[0].ShooterID = "mutated"
	assert.Equal(t, []string{"orig"}, shooters(q.Drain(2)))
}

func TestClear(t *testing.T) {
	q := newTestQueue()
	q.Push(batch(2, "a"), 0, 0)
	q.Drain(1)
	q.Clear()

	assert.Equal(t, int64(-1), q.LastDrainedTick())
	assert.Empty(t, q.Drain(5))
	assert.Equal(t, uint64(1), q.Stats().ReceivedBatches)
}
