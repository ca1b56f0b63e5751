package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/backend/terminal/logview"
	"github.com/valerio/gbdebug/gbdebug/input"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/input/event"
	"github.com/valerio/gbdebug/gbdebug/state"
)

const (
	logCapacity = 100
	// first row below the panel layout, used for the log strip
	logTop = 29
)

var (
	defaultStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	borderStyle   = defaultStyle.Foreground(tcell.ColorSilver)
	titleStyle    = defaultStyle.Foreground(tcell.ColorYellow).Bold(true)
	disabledStyle = defaultStyle.Foreground(tcell.ColorGray)
	buttonStyle   = defaultStyle.Reverse(true)
)

// Backend renders the debugger panels as boxes on a tcell screen.
// Logs are captured into a ring and shown in a strip below the panels.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	closing atomic.Bool

	logs       *logview.Ring
	logLevel   slog.Level
	prevLogger *slog.Logger

	handler   *input.Handler
	triggered map[action.Action]bool
	scroller  *backend.Scroller

	signals chan os.Signal
	done    chan struct{}

	// current panel
	area   backend.Placement
	row    int
	inside bool
	scroll scrollInfo
}

type scrollInfo struct {
	active             bool
	first, last, total int
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Canvas  = (*Backend)(nil)
)

// New creates a terminal backend drawing on the process terminal.
func New() *Backend {
	return &Backend{logLevel: slog.LevelInfo}
}

// NewWithScreen creates a terminal backend drawing on screen, which is
// initialized by Init. Mostly useful with a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, logLevel: slog.LevelInfo}
}

// Init initializes the screen and redirects the default logger into the log
// strip until Cleanup.
func (t *Backend) Init(config backend.Config) error {
	screen := t.screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		screen = s
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.screen = screen
	t.config = config
	t.closing.Store(false)
	t.handler = input.NewHandler()
	t.triggered = make(map[action.Action]bool)
	t.scroller = backend.NewScroller()

	t.logs = logview.NewRing(logCapacity)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(logview.NewHandler(t.logs, slog.LevelDebug)))

	t.screen.SetStyle(defaultStyle)
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	t.done = make(chan struct{})
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go t.handleSignals(t.signals, t.done)

	slog.Info("Terminal backend initialized", "title", config.Title)
	return nil
}

// Cleanup restores the terminal and the previous default logger.
func (t *Backend) Cleanup() error {
	if t.done != nil {
		signal.Stop(t.signals)
		close(t.done)
		t.done = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	return nil
}

func (t *Backend) handleSignals(signals <-chan os.Signal, done <-chan struct{}) {
	select {
	case <-signals:
		t.closing.Store(true)
	case <-done:
	}
}

func (t *Backend) PollEvent() backend.Event {
	if t.screen == nil || !t.screen.HasPendingEvent() {
		return nil
	}
	return t.screen.PollEvent()
}

func (t *Backend) ProcessEvent(ev backend.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.processKeyEvent(ev)
	case *tcell.EventResize:
		if t.screen != nil {
			t.screen.Sync()
		}
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		slog.Info("Interrupted from keyboard")
		t.closing.Store(true)
		return
	}

	name, ok := keyName(ev)
	if !ok {
		return
	}
	act, ok := input.GetDefaultMapping(name)
	if !ok {
		return
	}
	if !t.handler.ProcessEvent(act, event.Press) {
		return
	}

	slog.Debug("Key press", "key", name, "action", action.GetInfo(act).Description)
	t.triggered[act] = true
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyPgUp:   "PageUp",
	tcell.KeyPgDn:   "PageDown",
	tcell.KeyHome:   "Home",
	tcell.KeyEnd:    "End",
	tcell.KeyEscape: "Escape",
	tcell.KeyF1:     "F1",
	tcell.KeyF2:     "F2",
	tcell.KeyF3:     "F3",
	tcell.KeyF4:     "F4",
}

func keyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() != tcell.KeyRune {
		name, ok := tcellKeyNameMap[ev.Key()]
		return name, ok
	}
	if ev.Rune() == ' ' {
		return "Space", true
	}
	return string(ev.Rune()), true
}

func (t *Backend) BeginFrame() {
	if t.screen == nil {
		return
	}
	t.screen.Clear()
}

func (t *Backend) EndFrame() {
	if t.screen != nil {
		t.drawLogs()
		t.screen.Show()
	}
	clear(t.triggered)
}

func (t *Backend) ShouldClose() bool {
	return t.closing.Load()
}

// GetWindow returns the tcell screen.
func (t *Backend) GetWindow() any {
	return t.screen
}

func (t *Backend) Canvas() backend.Canvas {
	return t
}

func (t *Backend) BeginPanel(title string, placement backend.Placement) {
	t.area = placement
	t.row = placement.Y + 1
	t.inside = true
	t.scroll = scrollInfo{}
	t.drawBox(placement, title)
}

func (t *Backend) EndPanel() {
	if t.scroll.active {
		t.drawScrollPosition()
	}
	t.inside = false
}

func (t *Backend) Text(text string) {
	t.line(text, defaultStyle)
}

func (t *Backend) TextColored(color state.Color, text string) {
	t.line(text, defaultStyle.Foreground(toTcellColor(color)))
}

func (t *Backend) TextDisabled(text string) {
	t.line(text, disabledStyle)
}

func (t *Backend) Separator() {
	if !t.rowVisible() {
		t.row++
		return
	}
	left, right := t.area.X, t.area.X+t.area.Width-1
	t.setContent(left, t.row, tcell.RuneLTee, borderStyle)
	for x := left + 1; x < right; x++ {
		t.setContent(x, t.row, tcell.RuneHLine, borderStyle)
	}
	t.setContent(right, t.row, tcell.RuneRTee, borderStyle)
	t.row++
}

func (t *Backend) Button(label string, act action.Action, enabled bool) bool {
	style := buttonStyle
	if !enabled {
		style = disabledStyle
	}
	t.line("[ "+label+" ]", style)
	return enabled && t.triggered[act]
}

// Combo shows the current item only; the selection changes through actions.
func (t *Backend) Combo(label string, items []string, current int) int {
	text := label
	if current >= 0 && current < len(items) {
		text = fmt.Sprintf("%s: < %s >", label, items[current])
	}
	t.line(text, defaultStyle)
	return current
}

func (t *Backend) Triggered(act action.Action) bool {
	return t.triggered[act]
}

// BeginScroll fits the region in the rows left in the current panel.
func (t *Backend) BeginScroll(id string, total int) (first, last int) {
	height := t.area.Y + t.area.Height - 1 - t.row
	if height < 1 {
		height = 1
	}
	first, last = t.scroller.Visible(id, total, height, t.Triggered)
	t.scroll = scrollInfo{active: true, first: first, last: last, total: total}
	return first, last
}

func (t *Backend) EndScroll() {}

func (t *Backend) rowVisible() bool {
	return t.inside && t.row < t.area.Y+t.area.Height-1
}

func (t *Backend) line(text string, style tcell.Style) {
	if t.rowVisible() {
		t.drawString(t.area.X+1, t.row, t.area.Width-2, text, style)
	}
	t.row++
}

func (t *Backend) drawBox(p backend.Placement, title string) {
	if p.Width < 2 || p.Height < 2 {
		return
	}
	right, bottom := p.X+p.Width-1, p.Y+p.Height-1

	for x := p.X + 1; x < right; x++ {
		t.setContent(x, p.Y, tcell.RuneHLine, borderStyle)
		t.setContent(x, bottom, tcell.RuneHLine, borderStyle)
	}
	for y := p.Y + 1; y < bottom; y++ {
		t.setContent(p.X, y, tcell.RuneVLine, borderStyle)
		t.setContent(right, y, tcell.RuneVLine, borderStyle)
	}
	t.setContent(p.X, p.Y, tcell.RuneULCorner, borderStyle)
	t.setContent(right, p.Y, tcell.RuneURCorner, borderStyle)
	t.setContent(p.X, bottom, tcell.RuneLLCorner, borderStyle)
	t.setContent(right, bottom, tcell.RuneLRCorner, borderStyle)

	t.drawString(p.X+2, p.Y, p.Width-4, " "+title+" ", titleStyle)
}

func (t *Backend) drawScrollPosition() {
	text := fmt.Sprintf(" %d-%d/%d ", t.scroll.first+1, t.scroll.last, t.scroll.total)
	x := t.area.X + t.area.Width - 2 - len(text)
	t.drawString(x, t.area.Y+t.area.Height-1, len(text), text, disabledStyle)
}

func (t *Backend) drawLogs() {
	width, height := t.screen.Size()
	rows := height - logTop
	if rows <= 0 {
		return
	}

	for i, entry := range t.recentLogs(rows) {
		style := defaultStyle.Foreground(tcell.ColorBlue)
		switch {
		case entry.Level >= slog.LevelError:
			style = defaultStyle.Foreground(tcell.ColorRed).Bold(true)
		case entry.Level >= slog.LevelWarn:
			style = defaultStyle.Foreground(tcell.ColorYellow)
		case entry.Level < slog.LevelInfo:
			style = disabledStyle
		}
		t.drawString(0, logTop+i, width, logview.Format(entry), style)
	}
}

func (t *Backend) recentLogs(n int) []logview.Entry {
	all := t.logs.Recent(0)
	logs := make([]logview.Entry, 0, n)
	for _, e := range all {
		if e.Level < t.logLevel {
			continue
		}
		logs = append(logs, e)
		if len(logs) == n {
			break
		}
	}
	return logs
}

func (t *Backend) drawString(x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > width {
		if width > 3 {
			runes = append(runes[:width-3], '.', '.', '.')
		} else {
			runes = runes[:width]
		}
	}
	for i, r := range runes {
		t.setContent(x+i, y, r, style)
	}
}

func (t *Backend) setContent(x, y int, r rune, style tcell.Style) {
	if t.screen == nil {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func toTcellColor(c state.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) int32 {
	return int32(max(0, min(v, 1)) * 255)
}
