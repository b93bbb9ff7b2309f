package input

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/protocol"
)

type recorder struct {
	mu   sync.Mutex
	cmds []*protocol.InputCmd
}

func (r *recorder) RecordInput(cmd *protocol.InputCmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cmds)
}

func newTestSender(mock *clock.Mock, send SendFunc, rec Recorder) *Sender {
	return NewSender(Config{
		Rate:     20,
		Clock:    mock,
		Sampler:  SamplerFunc(func() Sample { return Sample{MoveY: 1, Buttons: protocol.ButtonFire} }),
		Send:     send,
		Recorder: rec,
	})
}

func TestSenderTicksAtRate(t *testing.T) {
	mock := clock.NewMock()
	var sent []*protocol.InputCmd
	var mu sync.Mutex
	rec := &recorder{}
	s := newTestSender(mock, func(cmd *protocol.InputCmd) error {
		mu.Lock()
		sent = append(sent, cmd)
		mu.Unlock()
		return nil
	}, rec)
	assert.Equal(t, 50*time.Millisecond, s.Period())

	s.Start()
	defer s.Stop()

	for i := 1; i <= 3; i++ {
		mock.Add(s.Period())
		require.Eventually(t, func() bool { return rec.len() == i }, time.Second, time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 3)
	for i, cmd := range sent {
		assert.Equal(t, uint32(i+1), cmd.InputSeq)
		assert.Equal(t, float32(1), cmd.MoveY)
		assert.True(t, cmd.Buttons.Has(protocol.ButtonFire))
		assert.NoError(t, protocol.ValidateInputCmd(cmd))
	}
	assert.Equal(t, float64(150), sent[2].ClientTimeMs)

	n, failed := s.Counts()
	assert.Equal(t, uint64(3), n)
	assert.Equal(t, uint64(0), failed)
}

func TestSenderFailedSendNotRecorded(t *testing.T) {
	mock := clock.NewMock()
	rec := &recorder{}
	s := newTestSender(mock, func(*protocol.InputCmd) error { return errors.New("closed") }, rec)
	s.Start()

	mock.Add(s.Period())
	require.Eventually(t, func() bool {
		_, failed := s.Counts()
		return failed == 1
	}, time.Second, time.Millisecond)
	s.Stop()

	assert.Equal(t, 0, rec.len())
}

func TestSenderStopIdempotent(t *testing.T) {
	mock := clock.NewMock()
	s := newTestSender(mock, func(*protocol.InputCmd) error { return nil }, nil)

	assert.NotPanics(t, s.Stop) // Before Start
	s.Start()
	s.Start()
	assert.True(t, s.Running())
	s.Stop()
	assert.NotPanics(t, s.Stop)
	assert.False(t, s.Running())

	// No sends after Stop.
	mock.Add(10 * s.Period())
	sent, _ := s.Counts()
	assert.Equal(t, uint64(0), sent)
}

func TestSenderRestart(t *testing.T) {
	mock := clock.NewMock()
	rec := &recorder{}
	s := newTestSender(mock, func(*protocol.InputCmd) error { return nil }, rec)

	s.Start()
	mock.Add(s.Period())
	require.Eventually(t, func() bool { return rec.len() == 1 }, time.Second, time.Millisecond)
	s.Stop()

	s.Start()
	defer s.Stop()
	mock.Add(s.Period())
	require.Eventually(t, func() bool { return rec.len() == 2 }, time.Second, time.Millisecond)

	// Sequence numbers continue across restarts.
	assert.Equal(t, uint32(2), rec.cmds[1].InputSeq)
}

func TestSenderUsesTickFunc(t *testing.T) {
	mock := clock.NewMock()
	rec := &recorder{}
	s := NewSender(Config{
		Clock:    mock,
		Sampler:  SamplerFunc(func() Sample { return Sample{} }),
		Send:     func(*protocol.InputCmd) error { return nil },
		Recorder: rec,
		Tick:     func() uint32 { return 777 },
	})
	s.Start()
	defer s.Stop()

	mock.Add(s.Period())
	require.Eventually(t, func() bool { return rec.len() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, uint32(777), rec.cmds[0].ClientTick)
}

func TestBuildInputCmd(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		sample Sample
		check  func(t *testing.T, cmd *protocol.InputCmd)
	}{
		{
			name:   "passes through valid sample",
			sample: Sample{MoveX: 0.5, MoveY: -0.25, Yaw: 1, Pitch: -0.5, Buttons: protocol.ButtonJump, WeaponSlot: 3},
			check: func(t *testing.T, cmd *protocol.InputCmd) {
				assert.Equal(t, float32(0.5), cmd.MoveX)
				assert.Equal(t, float32(-0.25), cmd.MoveY)
				assert.Equal(t, float32(1), cmd.Yaw)
				assert.Equal(t, float32(-0.5), cmd.Pitch)
				assert.Equal(t, protocol.ButtonJump, cmd.Buttons)
				assert.Equal(t, uint8(3), cmd.WeaponSlot)
			},
		},
		{
			name:   "clamps and normalizes axes",
			sample: Sample{MoveX: 5, MoveY: 5},
			check: func(t *testing.T, cmd *protocol.InputCmd) {
				assert.InDelta(t, math.Sqrt2/2, cmd.MoveX, 1e-6)
				assert.InDelta(t, math.Sqrt2/2, cmd.MoveY, 1e-6)
			},
		},
		{
			name:   "non-finite values become zero",
			sample: Sample{MoveX: nan, MoveY: nan, Yaw: inf, Pitch: nan},
			check: func(t *testing.T, cmd *protocol.InputCmd) {
				assert.Zero(t, cmd.MoveX)
				assert.Zero(t, cmd.MoveY)
				assert.Zero(t, cmd.Yaw)
				assert.Zero(t, cmd.Pitch)
			},
		},
		{
			name:   "wraps yaw and clamps pitch",
			sample: Sample{Yaw: 3 * math.Pi / 2, Pitch: 4},
			check: func(t *testing.T, cmd *protocol.InputCmd) {
				assert.InDelta(t, -math.Pi/2, cmd.Yaw, 1e-6)
				assert.InDelta(t, math.Pi/2, cmd.Pitch, 1e-5)
			},
		},
		{
			name:   "drops unknown buttons and slots",
			sample: Sample{Buttons: 0xFFFF, WeaponSlot: 200},
			check: func(t *testing.T, cmd *protocol.InputCmd) {
				assert.Equal(t, protocol.ButtonsAll, cmd.Buttons)
				assert.Equal(t, uint8(0), cmd.WeaponSlot)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := BuildInputCmd(9, 4, tt.sample, 12.5)
			assert.Equal(t, uint32(9), cmd.InputSeq)
			assert.Equal(t, uint32(4), cmd.ClientTick)
			require.NoError(t, protocol.ValidateInputCmd(cmd))
			tt.check(t, cmd)

			// Survives the wire.
			parsed, err := protocol.ParseInputCmd(protocol.MarshalInputCmd(cmd))
			require.NoError(t, err)
			assert.Equal(t, *cmd, *parsed)
		})
	}
}
