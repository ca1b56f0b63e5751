package gbdebug

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/backend/headless"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/panel"
	"github.com/valerio/gbdebug/gbdebug/state"
)

// MockBackend counts lifecycle calls and embeds a headless backend for the
// canvas.
type MockBackend struct {
	*headless.Backend

	initErr     error
	initCalls   int
	cleanupErr  error
	cleanups    int
	frames      int
	polls       int
	canvases    int
	closeWindow bool
	lastConfig  backend.Config
}

func NewMockBackend() *MockBackend {
	return &MockBackend{Backend: headless.New(0)}
}

func (m *MockBackend) Init(config backend.Config) error {
	m.initCalls++
	m.lastConfig = config
	if m.initErr != nil {
		return m.initErr
	}
	return m.Backend.Init(config)
}

func (m *MockBackend) Cleanup() error {
	m.cleanups++
	if m.cleanupErr != nil {
		return m.cleanupErr
	}
	return m.Backend.Cleanup()
}

func (m *MockBackend) PollEvent() backend.Event {
	m.polls++
	return m.Backend.PollEvent()
}

func (m *MockBackend) BeginFrame() {
	m.frames++
	m.Backend.BeginFrame()
}

func (m *MockBackend) Canvas() backend.Canvas {
	m.canvases++
	return m.Backend.Canvas()
}

func (m *MockBackend) ShouldClose() bool {
	return m.closeWindow
}

func (m *MockBackend) GetWindow() any {
	return "window"
}

func fullMemory() []byte {
	return make([]byte, state.MemorySize)
}

func TestDebugger_OpenClose(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)

	assert.False(t, d.IsOpen())
	assert.Nil(t, d.GetWindow())

	require.NoError(t, d.Open())
	assert.True(t, d.IsOpen())
	assert.Equal(t, "window", d.GetWindow())
	assert.Equal(t, backend.DefaultConfig(), mock.lastConfig)

	// open twice initializes once
	require.NoError(t, d.Open())
	assert.Equal(t, 1, mock.initCalls)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, mock.cleanups)

	// reopen after close
	require.NoError(t, d.Open())
	require.NoError(t, d.Close())
	assert.Equal(t, 2, mock.initCalls)
	assert.Equal(t, 2, mock.cleanups)
}

func TestDebugger_CloseWithoutOpen(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)

	assert.NoError(t, d.Close())
	assert.Equal(t, 0, mock.cleanups)
}

func TestDebugger_OpenFailure(t *testing.T) {
	initErr := errors.New("no display")
	mock := NewMockBackend()
	mock.initErr = initErr

	d := New(mock)
	err := d.Open()
	assert.ErrorIs(t, err, initErr)
	assert.False(t, d.IsOpen())

	// nothing to clean up
	assert.NoError(t, d.Close())
	assert.Equal(t, 0, mock.cleanups)

	// retry once the backend recovers
	mock.initErr = nil
	require.NoError(t, d.Open())
	assert.True(t, d.IsOpen())
	assert.Equal(t, 2, mock.initCalls)
}

func TestDebugger_CleanupError(t *testing.T) {
	cleanupErr := errors.New("busy")
	mock := NewMockBackend()
	mock.cleanupErr = cleanupErr

	d := New(mock)
	require.NoError(t, d.Open())
	assert.ErrorIs(t, d.Close(), cleanupErr)
	assert.False(t, d.IsOpen())
}

func TestDebugger_NewWithConfig(t *testing.T) {
	mock := NewMockBackend()
	config := backend.Config{Title: "Custom", Width: 1024, Height: 768}

	d := NewWithConfig(mock, config)
	require.NoError(t, d.Open())
	assert.Equal(t, config, mock.lastConfig)
}

func TestDebugger_ClosedIsNoOp(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)

	assert.Nil(t, d.PollEvent())
	d.ProcessEvent(headless.Event{Action: action.Exit})
	d.BeginFrame()
	d.Render()
	d.EndFrame()
	assert.False(t, d.ShouldClose())

	assert.Equal(t, 0, mock.initCalls)
	assert.Equal(t, 0, mock.polls)
	assert.Equal(t, 0, mock.frames)
	assert.Equal(t, 0, mock.canvases)
	assert.Equal(t, 0, mock.FrameCount())
	assert.Empty(t, mock.CurrentOps())
}

func TestDebugger_ShouldClose(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)
	mock.closeWindow = true

	assert.False(t, d.ShouldClose(), "closed debugger never asks to close")

	require.NoError(t, d.Open())
	assert.True(t, d.ShouldClose())
}

func TestDebugger_UpdatesWhileClosed(t *testing.T) {
	d := New(NewMockBackend())

	d.UpdateCPU(12345, 0x0150, 0xFFFE, 0x01B0, 0x0013, 0x00D8, 0x014D, true)
	cpu := d.CPUPanel().State()
	assert.Equal(t, uint64(12345), cpu.Cycle)
	assert.Equal(t, uint16(0x0150), cpu.PC)
	assert.Equal(t, uint8(0x01), cpu.GetA())
	assert.True(t, cpu.IME)
	assert.Equal(t, cpu, d.FlagsPanel().State())

	mem := fullMemory()
	mem[0x1234] = 0xAB
	require.NoError(t, d.UpdateMemory(mem))
	assert.True(t, d.MemoryPanel().IsValid())
	assert.Equal(t, uint8(0xAB), d.MemoryPanel().Read(0x1234))
	for addr := 0; addr < state.MemorySize; addr++ {
		if addr != 0x1234 {
			require.Equal(t, uint8(0), d.MemoryPanel().Read(uint16(addr)), "addr 0x%04X", addr)
		}
	}
}

func TestDebugger_UpdateMemoryRejectsBadBuffers(t *testing.T) {
	d := New(NewMockBackend())

	assert.ErrorIs(t, d.UpdateMemory(nil), state.ErrNoBuffer)
	assert.ErrorIs(t, d.UpdateMemory(make([]byte, 10)), state.ErrBufferSize)
	assert.False(t, d.MemoryPanel().IsValid())

	mem := fullMemory()
	mem[0] = 0x31
	require.NoError(t, d.UpdateMemory(mem))
	assert.ErrorIs(t, d.UpdateMemory(make([]byte, state.MemorySize+1)), state.ErrBufferSize)
	assert.Equal(t, uint8(0x31), d.MemoryPanel().Read(0))
}

func TestDebugger_MemoryEndToEnd(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)
	require.NoError(t, d.Open())

	mem := fullMemory()
	mem[0x1234] = 0xAB
	require.NoError(t, d.UpdateMemory(mem))

	d.BeginFrame()
	d.Render()
	d.EndFrame()

	found := false
	for _, op := range mock.LastFrame().Ops {
		if op.Panel == panel.MemoryViewerName && op.Text == panel.FormatRow(0x1230, [state.RowSize]uint8{4: 0xAB}) {
			found = true
		}
	}
	assert.True(t, found, "row 0x1230 shows 0xAB at offset 4")
}

func TestDebugger_RenderOrder(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)
	require.NoError(t, d.Open())

	d.BeginFrame()
	d.Render()
	d.EndFrame()

	var got []string
	for _, op := range mock.LastFrame().Ops {
		if op.Kind == headless.OpBeginPanel {
			got = append(got, op.Text)
		}
	}

	want := []string{panel.CPUStateName, panel.FlagsName, panel.MemoryViewerName, panel.ControlName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render order mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, p := range d.Panels() {
		names = append(names, p.GetName())
	}
	assert.Equal(t, want, names)
}

func TestDebugger_PanelVisibility(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)
	require.NoError(t, d.Open())

	assert.True(t, d.SetPanelVisible(panel.FlagsName, false))
	assert.False(t, d.SetPanelVisible("Disassembly", false))
	assert.False(t, d.FlagsPanel().IsVisible())

	// F3 hides the memory viewer
	mock.Press(action.ToggleMemoryPanel)
	d.ProcessEvent(d.PollEvent())

	d.BeginFrame()
	d.Render()
	d.EndFrame()

	var got []string
	for _, op := range mock.LastFrame().Ops {
		if op.Kind == headless.OpBeginPanel {
			got = append(got, op.Text)
		}
	}
	assert.Equal(t, []string{panel.CPUStateName, panel.ControlName}, got)
	assert.False(t, d.MemoryPanel().IsVisible())
}

func TestDebugger_ControlPassthroughs(t *testing.T) {
	d := New(NewMockBackend())

	assert.False(t, d.IsRunning())
	d.ToggleRunning()
	assert.True(t, d.IsRunning())
	d.SetRunning(false)
	assert.False(t, d.IsRunning())

	assert.Equal(t, 3, d.GetSpeedIndex())
	assert.Equal(t, 1.0, d.GetSpeedMultiplier())
	d.SetSpeedIndex(6)
	d.CycleSpeedUp()
	assert.Equal(t, 8.0, d.GetSpeedMultiplier())
	d.SetSpeedIndex(0)
	d.CycleSpeedDown()
	assert.Equal(t, 0.125, d.GetSpeedMultiplier())
	d.SetSpeedIndex(42)
	assert.Equal(t, 0, d.GetSpeedIndex())

	assert.False(t, d.IsStepRequested())
	d.ControlPanel().RequestStep()
	assert.True(t, d.IsStepRequested())
	d.ClearStepRequest()
	assert.False(t, d.IsStepRequested())
}

// Five speed-ups from the default speed saturate at the fastest speed and
// five speed-downs from there land on 1/4x.
func TestDebugger_SpeedCycling(t *testing.T) {
	d := New(NewMockBackend())

	for i := 0; i < 5; i++ {
		d.CycleSpeedUp()
	}
	assert.Equal(t, panel.SpeedCount-1, d.GetSpeedIndex())

	for i := 0; i < 5; i++ {
		d.CycleSpeedDown()
	}
	assert.Equal(t, 1, d.GetSpeedIndex())
	assert.Equal(t, 0.25, d.GetSpeedMultiplier())
}

func TestDebugger_StepAndExitThroughFrames(t *testing.T) {
	mock := NewMockBackend()
	d := New(mock)
	require.NoError(t, d.Open())

	frame := func(acts ...action.Action) {
		for _, act := range acts {
			mock.Press(act)
		}
		for ev := d.PollEvent(); ev != nil; ev = d.PollEvent() {
			d.ProcessEvent(ev)
		}
		d.BeginFrame()
		d.Render()
		d.EndFrame()
	}

	frame(action.Step)
	assert.True(t, d.IsStepRequested())

	// the request survives frames until cleared
	frame()
	assert.True(t, d.IsStepRequested())
	d.ClearStepRequest()

	frame(action.Exit)
	assert.True(t, d.IsExitRequested())

	frame(action.ToggleRun)
	assert.True(t, d.IsRunning())
	assert.True(t, d.IsExitRequested(), "exit stays requested")
}
