package main

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/termisu/abi"
	"github.com/lixenwraith/termisu/config"
	"github.com/lixenwraith/termisu/lasterror"
	"github.com/lixenwraith/termisu/registry"
	"github.com/lixenwraith/termisu/terminal"
)

var (
	sessions = registry.NewTable[*terminal.Session]()

	configOnce sync.Once
	cfg        *config.Config
	logger     *log.Logger

	// newSession is swapped in tests to back sessions with a
	// simulation screen.
	newSession = terminal.New
)

// loadConfig reads the optional library configuration once. Config
// trouble must not break session creation; a bad file degrades to
// defaults with no tracing.
func loadConfig() *config.Config {
	configOnce.Do(func() {
		c, err := config.Load()
		if err != nil {
			c = &config.Config{}
		}
		cfg = c
		if lg, err := c.OpenLog(); err == nil {
			logger = lg
		}
	})
	return cfg
}

// failf records a diagnostic on the error channel and returns st.
func failf(st abi.Status, format string, args ...any) abi.Status {
	lasterror.Setf(format, args...)
	if logger != nil {
		logger.Printf(format, args...)
	}
	return st
}

func invalidHandle(h uint64) abi.Status {
	return failf(abi.StatusInvalidHandle, "Invalid handle: %d", h)
}

// statusFor maps session errors onto boundary statuses. Timeout is an
// expected outcome and never touches the error channel.
func statusFor(op string, err error) abi.Status {
	switch {
	case errors.Is(err, terminal.ErrTimeout):
		return abi.StatusTimeout
	case errors.Is(err, terminal.ErrClosed):
		return failf(abi.StatusInvalidHandle, "Invalid handle: session is closed")
	case errors.Is(err, terminal.ErrOutOfRange), errors.Is(err, terminal.ErrBadCodepoint):
		return failf(abi.StatusRejected, "%s rejected: %v", op, err)
	default:
		return failf(abi.StatusError, "%s failed: %v", op, err)
	}
}

// guard keeps panics from crossing the boundary.
func guard(ret *abi.Status) {
	if r := recover(); r != nil {
		lasterror.Setf("internal panic: %v", r)
		if logger != nil {
			logger.Printf("internal panic: %v", r)
		}
		*ret = abi.StatusError
	}
}

// withSession runs fn against a validated session.
func withSession(handle uint64, op string, fn func(*terminal.Session) error) (ret abi.Status) {
	defer guard(&ret)
	sess, ok := sessions.Get(handle)
	if !ok {
		return invalidHandle(handle)
	}
	if err := fn(sess); err != nil {
		return statusFor(op, err)
	}
	return abi.StatusOK
}

// createSession allocates a session and issues its handle, 0 on
// failure with the error channel populated.
func createSession(syncUpdates bool) (h uint64) {
	defer func() {
		if r := recover(); r != nil {
			lasterror.Setf("internal panic: %v", r)
			h = 0
		}
	}()
	c := loadConfig()
	sess, err := newSession(terminal.Options{
		SyncUpdates:      syncUpdates,
		Mouse:            c.Defaults.Mouse,
		EnhancedKeyboard: c.Defaults.EnhancedKeyboard,
		Log:              logger,
	})
	if err != nil {
		lasterror.Setf("create failed: %v", err)
		if logger != nil {
			logger.Printf("create failed: %v", err)
		}
		return 0
	}
	return sessions.Put(sess)
}

// destroySession removes the handle first, so it stops validating
// before the session tears down; an in-flight poll then returns
// promptly and reports Invalid-Handle.
func destroySession(handle uint64) (ret abi.Status) {
	defer guard(&ret)
	sess, ok := sessions.Remove(handle)
	if !ok {
		return invalidHandle(handle)
	}
	if err := sess.Close(); err != nil {
		return statusFor("close", err)
	}
	return abi.StatusOK
}

func sessionSize(handle uint64) (sz abi.Size, ret abi.Status) {
	defer guard(&ret)
	sess, ok := sessions.Get(handle)
	if !ok {
		return abi.Size{}, invalidHandle(handle)
	}
	sz, err := sess.Size()
	if err != nil {
		return abi.Size{}, statusFor("size", err)
	}
	return sz, abi.StatusOK
}

// syncUpdatesFlag reads the batching flag. The export has no status
// return; an invalid handle reads as 0 with the error channel
// populated.
func syncUpdatesFlag(handle uint64) uint8 {
	sess, ok := sessions.Get(handle)
	if !ok {
		lasterror.Setf("Invalid handle: %d", handle)
		return 0
	}
	if sess.SyncUpdates() {
		return 1
	}
	return 0
}

func setCell(handle uint64, x, y int32, codepoint uint32, style abi.CellStyle) (ret abi.Status) {
	defer guard(&ret)
	sess, ok := sessions.Get(handle)
	if !ok {
		return invalidHandle(handle)
	}
	if err := sess.SetCell(x, y, codepoint, style); err != nil {
		return statusFor("set_cell", err)
	}
	return abi.StatusOK
}

func enableTimer(handle uint64, intervalMs int32, mode terminal.TimerMode) (ret abi.Status) {
	defer guard(&ret)
	if intervalMs <= 0 {
		return failf(abi.StatusInvalidArgument, "interval_ms must be positive, got %d", intervalMs)
	}
	sess, ok := sessions.Get(handle)
	if !ok {
		return invalidHandle(handle)
	}
	if err := sess.EnableTimer(time.Duration(intervalMs)*time.Millisecond, mode); err != nil {
		return statusFor("enable_timer", err)
	}
	return abi.StatusOK
}

func pollEvent(handle uint64, timeoutMs int32) (ev abi.Event, ret abi.Status) {
	defer guard(&ret)
	sess, ok := sessions.Get(handle)
	if !ok {
		return abi.Event{}, invalidHandle(handle)
	}
	ev, err := sess.Poll(timeoutMs)
	if err != nil {
		return abi.Event{}, statusFor("poll_event", err)
	}
	return ev, abi.StatusOK
}
