package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termisu/abi"
)

func collectTicks(t *testing.T, mode TimerMode, interval time.Duration, n int) []abi.Event {
	t.Helper()
	ch := make(chan abi.Event, 64)
	tt := newTickTimer(interval, mode, func(ev abi.Event) bool {
		select {
		case ch <- ev:
			return true
		default:
			return false
		}
	})
	defer tt.halt()

	out := make([]abi.Event, 0, n)
	deadline := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("collected %d of %d ticks before deadline", len(out), n)
		}
	}
	return out
}

func TestFixedStepTicks(t *testing.T) {
	interval := 5 * time.Millisecond
	ticks := collectTicks(t, TimerFixedStep, interval, 4)

	var prevFrame uint64
	for _, ev := range ticks {
		assert.Equal(t, uint8(abi.EventTick), ev.Type)
		// Fixed step reports the nominal interval, not wall time.
		assert.Equal(t, int64(interval), ev.TickDeltaNs)
		assert.Equal(t, int64(ev.TickFrame)*int64(interval), ev.TickElapsedNs)
		assert.Greater(t, ev.TickFrame, prevFrame)
		prevFrame = ev.TickFrame
	}
}

func TestWallClockTicks(t *testing.T) {
	interval := 5 * time.Millisecond
	ticks := collectTicks(t, TimerWallClock, interval, 4)

	var prevFrame uint64
	var prevElapsed int64
	for _, ev := range ticks {
		assert.Equal(t, uint8(abi.EventTick), ev.Type)
		assert.Positive(t, ev.TickDeltaNs)
		assert.Greater(t, ev.TickFrame, prevFrame)
		assert.Greater(t, ev.TickElapsedNs, prevElapsed)
		prevFrame = ev.TickFrame
		prevElapsed = ev.TickElapsedNs
	}
}

func TestHaltStopsDelivery(t *testing.T) {
	ch := make(chan abi.Event, 64)
	tt := newTickTimer(2*time.Millisecond, TimerWallClock, func(ev abi.Event) bool {
		ch <- ev
		return true
	})

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick before halt")
	}
	tt.halt()

	// Drain anything posted before the stop took effect, then verify
	// silence.
	for {
		select {
		case <-ch:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}
	select {
	case <-ch:
		t.Fatal("tick delivered after halt")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSessionTimerLifecycle(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	drain(t, s)

	require.Error(t, s.EnableTimer(0, TimerWallClock))
	require.Error(t, s.EnableTimer(-time.Second, TimerFixedStep))

	require.NoError(t, s.EnableTimer(5*time.Millisecond, TimerWallClock))
	ev := waitFor(t, s, abi.EventTick)
	assert.NotZero(t, ev.TickFrame)

	// Re-enabling replaces the running timer and restarts the frame
	// counter.
	require.NoError(t, s.EnableTimer(5*time.Millisecond, TimerFixedStep))
	ev = waitFor(t, s, abi.EventTick)
	assert.Equal(t, int64(5*time.Millisecond), ev.TickDeltaNs)

	require.NoError(t, s.DisableTimer())
	require.NoError(t, s.DisableTimer())
}
