package terminal

import (
	"sync"
	"time"

	"github.com/lixenwraith/termisu/abi"
)

// TimerMode selects how tick events are scheduled.
type TimerMode uint8

const (
	// TimerFixedStep schedules logic ticks on fixed deadlines: every
	// delivered tick reports delta equal to the interval, and when
	// delivery falls behind the deadline skips ahead, counting the gap
	// as missed ticks.
	TimerFixedStep TimerMode = iota

	// TimerWallClock ticks on wall-clock time and reports measured
	// deltas; lag shows up as a larger delta plus missed ticks.
	TimerWallClock
)

type tickTimer struct {
	interval time.Duration
	mode     TimerMode
	post     func(abi.Event) bool

	stop chan struct{}
	wg   sync.WaitGroup
}

func newTickTimer(interval time.Duration, mode TimerMode, post func(abi.Event) bool) *tickTimer {
	t := &tickTimer{
		interval: interval,
		mode:     mode,
		post:     post,
		stop:     make(chan struct{}),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// halt stops the timer and waits for its goroutine to exit. Called at
// most once per timer; the session replaces the pointer under lock.
func (t *tickTimer) halt() {
	close(t.stop)
	t.wg.Wait()
}

func (t *tickTimer) run() {
	defer t.wg.Done()
	if t.mode == TimerWallClock {
		t.runWallClock()
		return
	}
	t.runFixedStep()
}

func (t *tickTimer) runFixedStep() {
	start := time.Now()
	next := start.Add(t.interval)
	var frame, missed uint64

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-timer.C:
		}

		now := time.Now()
		frame++
		ev := abi.Event{
			Type:            uint8(abi.EventTick),
			TickFrame:       frame,
			TickElapsedNs:   int64(frame) * int64(t.interval),
			TickDeltaNs:     int64(t.interval),
			TickMissedTicks: missed,
		}
		missed = 0
		if !t.post(ev) {
			missed++
		}

		next = next.Add(t.interval)
		// More than two intervals behind: skip ahead instead of
		// burst-delivering stale ticks.
		if behind := now.Sub(next); behind > 2*t.interval {
			skip := uint64(behind / t.interval)
			missed += skip
			frame += skip
			next = next.Add(time.Duration(skip) * t.interval)
		}

		d := time.Until(next)
		if d < 0 {
			d = 0
		}
		timer.Reset(d)
	}
}

func (t *tickTimer) runWallClock() {
	start := time.Now()
	last := start
	var frame, missed uint64

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
		}

		now := time.Now()
		delta := now.Sub(last)
		last = now
		frame++
		if lag := delta / t.interval; lag > 1 {
			missed += uint64(lag - 1)
		}
		ev := abi.Event{
			Type:            uint8(abi.EventTick),
			TickFrame:       frame,
			TickElapsedNs:   int64(now.Sub(start)),
			TickDeltaNs:     int64(delta),
			TickMissedTicks: missed,
		}
		missed = 0
		if !t.post(ev) {
			missed++
		}
	}
}
