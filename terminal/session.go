package terminal

import (
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termisu/abi"
)

// eventQueueDepth bounds the per-session event queue. Input events are
// dropped when the caller stops draining; tick drops fold into the
// next tick's missed count.
const eventQueueDepth = 128

// Options configures a new session.
type Options struct {
	// SyncUpdates starts the session with synchronized-update batching
	// enabled: draw operations buffer until Render/Sync.
	SyncUpdates bool

	// Mouse enables mouse capture at creation.
	Mouse bool

	// EnhancedKeyboard enables the enhanced keyboard reporting mode
	// flag at creation.
	EnhancedKeyboard bool

	// Screen overrides the backing screen; nil allocates a real
	// terminal screen. Tests inject tcell.SimulationScreen here.
	Screen tcell.Screen

	// Log receives trace output. May be nil.
	Log *log.Logger
}

// Session is one live terminal-engine instance. It owns the backing
// screen for its whole lifetime; all access from the FFI boundary is
// mediated by handle lookup, never by pointer.
type Session struct {
	mu     sync.Mutex
	screen tcell.Screen
	closed bool

	syncUpdates bool
	mode        uint32

	cursorX, cursorY int32
	cursorShown      bool

	timer *tickTimer

	events   chan abi.Event
	done     chan struct{}
	readerWG sync.WaitGroup

	log *log.Logger
}

// New allocates and initializes a session. The screen enters its
// managed state (raw mode, alternate buffer for real terminals); Close
// restores it.
func New(opts Options) (*Session, error) {
	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("allocate screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	s := &Session{
		screen:      screen,
		syncUpdates: opts.SyncUpdates,
		events:      make(chan abi.Event, eventQueueDepth),
		done:        make(chan struct{}),
		log:         opts.Log,
	}
	if opts.SyncUpdates {
		s.mode |= abi.ModeFlagSyncUpdates
	}
	if opts.Mouse {
		screen.EnableMouse()
		s.mode |= abi.ModeFlagMouse
	}
	if opts.EnhancedKeyboard {
		s.mode |= abi.ModeFlagEnhancedKeyboard
	}

	// Initial mode report. The only ModeChange without a previous set.
	s.postEvent(abi.Event{
		Type:        uint8(abi.EventModeChange),
		ModeCurrent: s.mode,
	})

	s.readerWG.Add(1)
	go s.readLoop()

	if s.log != nil {
		s.log.Printf("session created mode=%#x", s.mode)
	}
	return s, nil
}

// Close releases the session: stops the timer, restores the terminal,
// and wakes any in-flight Poll (which then reports ErrClosed).
// Idempotent; never blocks on pollers.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.halt()
		s.timer = nil
	}
	// Fini restores the terminal and unblocks the read loop.
	s.screen.Fini()
	close(s.done)
	s.mu.Unlock()

	s.readerWG.Wait()
	if s.log != nil {
		s.log.Printf("session closed")
	}
	return nil
}

// Size returns the current terminal dimensions.
func (s *Session) Size() (abi.Size, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return abi.Size{}, ErrClosed
	}
	w, h := s.screen.Size()
	return abi.Size{Width: int32(w), Height: int32(h)}, nil
}

// SetSyncUpdates toggles synchronized-update batching. When disabled,
// every draw operation flushes to the terminal immediately.
func (s *Session) SetSyncUpdates(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.syncUpdates != enabled {
		s.syncUpdates = enabled
		s.setModeFlagLocked(abi.ModeFlagSyncUpdates, enabled)
	}
	return nil
}

// SyncUpdates reports whether synchronized-update batching is enabled.
func (s *Session) SyncUpdates() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncUpdates
}

// Mode returns the current session mode flag set.
func (s *Session) Mode() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Clear erases the cell buffer.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.screen.Clear()
	s.flushLocked()
	return nil
}

// Render commits buffered cell writes to the terminal.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.screen.Show()
	return nil
}

// Sync forces a full repaint, discarding any diff state.
func (s *Session) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.screen.Sync()
	return nil
}

// SetCursor positions the cursor and makes it visible.
func (s *Session) SetCursor(x, y int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.checkBoundsLocked(x, y); err != nil {
		return err
	}
	s.cursorX, s.cursorY = x, y
	s.cursorShown = true
	s.screen.ShowCursor(int(x), int(y))
	s.flushLocked()
	return nil
}

// HideCursor hides the cursor; the stored position is kept.
func (s *Session) HideCursor() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.cursorShown = false
	s.screen.HideCursor()
	s.flushLocked()
	return nil
}

// ShowCursor shows the cursor at its stored position.
func (s *Session) ShowCursor() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.cursorShown = true
	s.screen.ShowCursor(int(s.cursorX), int(s.cursorY))
	s.flushLocked()
	return nil
}

// SetCell writes one cell: position, codepoint, style.
func (s *Session) SetCell(x, y int32, codepoint uint32, style abi.CellStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.checkBoundsLocked(x, y); err != nil {
		return err
	}
	r := rune(codepoint)
	if codepoint > uint32(utf8.MaxRune) || utf16.IsSurrogate(r) {
		return fmt.Errorf("%w: %#x", ErrBadCodepoint, codepoint)
	}
	s.screen.SetContent(int(x), int(y), r, nil, styleToTcell(style))
	s.flushLocked()
	return nil
}

// EnableMouse turns on mouse capture. Idempotent.
func (s *Session) EnableMouse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.mode&abi.ModeFlagMouse == 0 {
		s.screen.EnableMouse()
		s.setModeFlagLocked(abi.ModeFlagMouse, true)
	}
	return nil
}

// DisableMouse turns off mouse capture. Idempotent.
func (s *Session) DisableMouse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.mode&abi.ModeFlagMouse != 0 {
		s.screen.DisableMouse()
		s.setModeFlagLocked(abi.ModeFlagMouse, false)
	}
	return nil
}

// EnableEnhancedKeyboard turns on the enhanced keyboard reporting mode
// flag. Modifier decoding itself is the screen backend's concern; the
// flag is tracked here and reported through ModeChange events.
func (s *Session) EnableEnhancedKeyboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.setModeFlagLocked(abi.ModeFlagEnhancedKeyboard, true)
	return nil
}

// DisableEnhancedKeyboard turns off the enhanced keyboard mode flag.
func (s *Session) DisableEnhancedKeyboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.setModeFlagLocked(abi.ModeFlagEnhancedKeyboard, false)
	return nil
}

// EnableTimer starts the tick timer, replacing any running one.
func (s *Session) EnableTimer(interval time.Duration, mode TimerMode) error {
	if interval <= 0 {
		return fmt.Errorf("timer interval must be positive, got %v", interval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.timer != nil {
		s.timer.halt()
	}
	s.timer = newTickTimer(interval, mode, s.postEvent)
	return nil
}

// DisableTimer stops the tick timer. Idempotent.
func (s *Session) DisableTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.timer != nil {
		s.timer.halt()
		s.timer = nil
	}
	return nil
}

// Poll blocks until an event is available, the timeout elapses, or the
// session is closed. timeoutMs == 0 checks and returns immediately;
// timeoutMs < 0 waits without bound (explicit caller intent). The
// session lock is never held during the wait, so Close stays callable
// while a poll is in flight.
func (s *Session) Poll(timeoutMs int32) (abi.Event, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return abi.Event{}, ErrClosed
	}
	events, done := s.events, s.done
	s.mu.Unlock()

	// A destroyed session wins over queued events.
	select {
	case <-done:
		return abi.Event{}, ErrClosed
	default:
	}

	switch {
	case timeoutMs == 0:
		select {
		case ev := <-events:
			return ev, nil
		default:
			return abi.Event{}, ErrTimeout
		}
	case timeoutMs < 0:
		select {
		case ev := <-events:
			return ev, nil
		case <-done:
			return abi.Event{}, ErrClosed
		}
	default:
		t := time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
		defer t.Stop()
		select {
		case ev := <-events:
			return ev, nil
		case <-done:
			return abi.Event{}, ErrClosed
		case <-t.C:
			return abi.Event{}, ErrTimeout
		}
	}
}

// readLoop converts screen events into boundary events until the
// screen is finalized.
func (s *Session) readLoop() {
	defer s.readerWG.Done()

	var prevW, prevH int32
	havePrev := false
	var prevButtons tcell.ButtonMask

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch tev := ev.(type) {
		case *tcell.EventKey:
			s.postEvent(keyEvent(tev))
		case *tcell.EventMouse:
			s.postEvent(mouseEvent(tev, prevButtons))
			prevButtons = tev.Buttons()
		case *tcell.EventResize:
			w, h := tev.Size()
			out := abi.Event{
				Type:         uint8(abi.EventResize),
				ResizeWidth:  int32(w),
				ResizeHeight: int32(h),
			}
			if havePrev {
				out.ResizeOldWidth = prevW
				out.ResizeOldHeight = prevH
				out.ResizeHasOld = 1
			}
			prevW, prevH = int32(w), int32(h)
			havePrev = true
			s.postEvent(out)
		}
	}
}

// postEvent enqueues without blocking. Input events are dropped when
// the caller stops draining; returns false on drop so tick accounting
// can record it.
func (s *Session) postEvent(ev abi.Event) bool {
	select {
	case s.events <- ev:
		return true
	default:
		if s.log != nil {
			s.log.Printf("event queue full, dropping type=%d", ev.Type)
		}
		return false
	}
}

// setModeFlagLocked updates one mode flag and emits a ModeChange event
// when the set actually changes. Caller holds s.mu.
func (s *Session) setModeFlagLocked(flag uint32, on bool) {
	prev := s.mode
	if on {
		s.mode |= flag
	} else {
		s.mode &^= flag
	}
	if s.mode == prev {
		return
	}
	s.postEvent(abi.Event{
		Type:            uint8(abi.EventModeChange),
		ModeCurrent:     s.mode,
		ModePrevious:    prev,
		ModeHasPrevious: 1,
	})
}

// checkBoundsLocked validates a cell position against the current
// screen size. Caller holds s.mu.
func (s *Session) checkBoundsLocked(x, y int32) error {
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= int32(w) || y >= int32(h) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, x, y, w, h)
	}
	return nil
}

// flushLocked commits immediately when synchronized updates are off.
// Caller holds s.mu.
func (s *Session) flushLocked() {
	if !s.syncUpdates {
		s.screen.Show()
	}
}
