package abi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledLayoutMatchesContract(t *testing.T) {
	require.NoError(t, VerifyLayout())
}

func TestColorLayout(t *testing.T) {
	var c Color
	assert.Equal(t, uintptr(12), unsafe.Sizeof(c))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(c.Mode))
	assert.Equal(t, uintptr(1), unsafe.Offsetof(c.Reserved))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(c.Index))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(c.R))
	assert.Equal(t, uintptr(9), unsafe.Offsetof(c.G))
	assert.Equal(t, uintptr(10), unsafe.Offsetof(c.B))
}

func TestCellStyleLayout(t *testing.T) {
	var cs CellStyle
	assert.Equal(t, uintptr(28), unsafe.Sizeof(cs))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(cs.Fg))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(cs.Bg))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(cs.Attr))
}

func TestSizeLayout(t *testing.T) {
	var sz Size
	assert.Equal(t, uintptr(8), unsafe.Sizeof(sz))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(sz.Width))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(sz.Height))
}

func TestEventLayout(t *testing.T) {
	var ev Event
	assert.Equal(t, uintptr(96), unsafe.Sizeof(ev))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(ev.Type))
	assert.Equal(t, uintptr(1), unsafe.Offsetof(ev.Modifiers))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(ev.KeyCode))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(ev.KeyChar))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(ev.MouseX))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(ev.MouseY))
	assert.Equal(t, uintptr(20), unsafe.Offsetof(ev.MouseButton))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(ev.MouseMotion))
	assert.Equal(t, uintptr(28), unsafe.Offsetof(ev.ResizeWidth))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(ev.ResizeHeight))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(ev.ResizeOldWidth))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(ev.ResizeOldHeight))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(ev.ResizeHasOld))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(ev.TickFrame))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(ev.TickElapsedNs))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(ev.TickDeltaNs))
	assert.Equal(t, uintptr(72), unsafe.Offsetof(ev.TickMissedTicks))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(ev.ModeCurrent))
	assert.Equal(t, uintptr(84), unsafe.Offsetof(ev.ModePrevious))
	assert.Equal(t, uintptr(88), unsafe.Offsetof(ev.ModeHasPrevious))
}

func TestSignatureStable(t *testing.T) {
	sig := Signature()
	assert.NotZero(t, sig)
	// Deterministic across calls; callers cache their compiled
	// expectation and compare once at load time.
	assert.Equal(t, sig, Signature())
}

func TestStatusValuesStable(t *testing.T) {
	// Numeric values are the wire contract.
	assert.Equal(t, Status(0), StatusOK)
	assert.Equal(t, Status(1), StatusTimeout)
	assert.Equal(t, Status(2), StatusInvalidArgument)
	assert.Equal(t, Status(3), StatusInvalidHandle)
	assert.Equal(t, Status(4), StatusRejected)
	assert.Equal(t, Status(5), StatusError)
}

func TestEventTypeValuesStable(t *testing.T) {
	assert.Equal(t, EventType(0), EventNone)
	assert.Equal(t, EventType(1), EventKey)
	assert.Equal(t, EventType(2), EventMouse)
	assert.Equal(t, EventType(3), EventResize)
	assert.Equal(t, EventType(4), EventTick)
	assert.Equal(t, EventType(5), EventModeChange)
}
